package model

import (
	"time"
)

// BudgetPeriod 预算周期常量
const (
	BudgetPeriodDaily   = "daily"
	BudgetPeriodWeekly  = "weekly"
	BudgetPeriodMonthly = "monthly"
	BudgetPeriodYearly  = "yearly"
)

// Budget 预算模型
// 对应数据库表 budgets
type Budget struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Category 预算分类，如 Food / Rent
	Category string `gorm:"size:50;not null" json:"category"`

	// Amount 预算金额（卢比）
	Amount float64 `gorm:"not null" json:"amount"`

	// Period 预算周期，默认 monthly
	Period string `gorm:"size:20;default:monthly" json:"period"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Budget) TableName() string {
	return "budgets"
}

// BudgetCategorySummary 单个分类的当月预算执行情况
type BudgetCategorySummary struct {
	Category   string  `json:"category"`
	Budgeted   float64 `json:"budgeted"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// BudgetSummary 当月预算汇总
type BudgetSummary struct {
	Categories     []BudgetCategorySummary `json:"categories"`
	TotalBudgeted  float64                 `json:"total_budgeted"`
	TotalSpent     float64                 `json:"total_spent"`
	TotalRemaining float64                 `json:"total_remaining"`
}
