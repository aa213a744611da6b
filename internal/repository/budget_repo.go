package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crednest-server/internal/model"
)

// BudgetRepository 预算数据访问层
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository 创建 BudgetRepository 实例
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create 创建预算
func (r *BudgetRepository) Create(ctx context.Context, budget *model.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

// GetByID 获取用户的某条预算
// 返回:
//   - *model.Budget: 不存在或不属于该用户时返回 nil
func (r *BudgetRepository) GetByID(ctx context.Context, userID, id int64) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &budget, nil
}

// ListByUser 获取用户的预算列表
// 参数:
//   - period: 周期过滤，为空表示全部
func (r *BudgetRepository) ListByUser(ctx context.Context, userID int64, period string) ([]model.Budget, error) {
	var budgets []model.Budget
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if period != "" {
		query = query.Where("period = ?", period)
	}
	err := query.Order("created_at DESC, id DESC").Find(&budgets).Error
	return budgets, err
}

// UpdateFields 更新预算的指定字段
// 返回:
//   - int64: 受影响的行数，0 表示预算不存在
func (r *BudgetRepository) UpdateFields(ctx context.Context, userID, id int64, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Budget{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// Delete 删除预算
// 返回:
//   - int64: 受影响的行数
func (r *BudgetRepository) Delete(ctx context.Context, userID, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Budget{})
	return result.RowsAffected, result.Error
}
