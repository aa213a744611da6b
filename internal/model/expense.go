package model

import (
	"time"
)

// PaymentMethods 支持的支付方式
var PaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "UPI", "Net Banking", "Other"}

// Expense 支出记录
// 对应数据库表 expenses
type Expense struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"index:idx_expense_user_date,priority:1;not null" json:"user_id"`
	Category    string    `gorm:"size:50;index;not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"size:500" json:"description"`
	Date        time.Time `gorm:"index:idx_expense_user_date,priority:2;not null" json:"date"`

	// PaymentMethod 支付方式，取值见 PaymentMethods
	PaymentMethod string `gorm:"size:20;default:Cash" json:"payment_method"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Expense) TableName() string {
	return "expenses"
}
