package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"crednest-server/internal/model"
)

// ExpenseFilter 支出查询条件，零值字段表示不过滤
type ExpenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// ExpenseRepository 支出数据访问层
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository 创建 ExpenseRepository 实例
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create 新增支出
func (r *ExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// List 按条件查询支出
// 返回:
//   - []model.Expense: 按日期倒序，最多 filter.Limit 条
//   - float64: 返回记录的金额合计
//   - error: 数据库错误
func (r *ExpenseRepository) List(ctx context.Context, userID int64, filter ExpenseFilter) ([]model.Expense, float64, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var expenses []model.Expense
	if err := query.Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, 0, err
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return expenses, total, nil
}

// Delete 删除支出
// 返回:
//   - int64: 受影响的行数，0 表示记录不存在
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Expense{})
	return result.RowsAffected, result.Error
}

// categorySum 分类合计扫描目标
type categorySum struct {
	Category string
	Total    float64
}

// SumByCategory 统计时间区间 [from, to) 内各分类的支出合计
func (r *ExpenseRepository) SumByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]float64, error) {
	var rows []categorySum
	err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64, len(rows))
	for _, row := range rows {
		sums[row.Category] = row.Total
	}
	return sums, nil
}
