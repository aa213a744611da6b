package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crednest-server/internal/model"
)

// BankRepository 银行目录数据访问层
type BankRepository struct {
	db *gorm.DB
}

// NewBankRepository 创建 BankRepository 实例
func NewBankRepository(db *gorm.DB) *BankRepository {
	return &BankRepository{db: db}
}

// List 获取银行列表
// 参数:
//   - loanType: home/personal/car/education，按对应利率升序、评分降序；
//     为空或未知时按评分降序
//   - limit: 最多返回条数
func (r *BankRepository) List(ctx context.Context, loanType string, limit int) ([]model.Bank, error) {
	query := r.db.WithContext(ctx).Model(&model.Bank{})
	if col := model.RateColumn(loanType); col != "" {
		query = query.Order(col + " ASC")
	}
	query = query.Order("rating DESC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var banks []model.Bank
	err := query.Find(&banks).Error
	return banks, err
}

// GetByID 根据 ID 获取银行，未找到返回 nil
func (r *BankRepository) GetByID(ctx context.Context, id int64) (*model.Bank, error) {
	var bank model.Bank
	err := r.db.WithContext(ctx).First(&bank, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bank, nil
}

// ReplaceAll 在一个事务内清空并重新写入银行目录
func (r *BankRepository) ReplaceAll(ctx context.Context, banks []model.Bank) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Bank{}).Error; err != nil {
			return err
		}
		if len(banks) == 0 {
			return nil
		}
		return tx.CreateInBatches(banks, 100).Error
	})
}
