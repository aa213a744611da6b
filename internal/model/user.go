// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// User 用户模型
// 对应数据库表 users
// 存储账户凭据与理财画像（收入、职业等）
type User struct {
	// ID 用户唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// Email 登录邮箱，统一存小写，全局唯一
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	// PasswordHash 密码的 bcrypt 哈希值
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// Name 姓名
	Name string `gorm:"size:100;not null" json:"name"`

	Age        *int    `json:"age,omitempty"`
	Gender     *string `gorm:"size:20" json:"gender,omitempty"`
	Phone      *string `gorm:"size:20" json:"phone,omitempty"`
	City       *string `gorm:"size:100" json:"city,omitempty"`
	State      *string `gorm:"size:100" json:"state,omitempty"`
	Country    string  `gorm:"size:100;default:India" json:"country"`
	Occupation *string `gorm:"size:100" json:"occupation,omitempty"`
	Company    *string `gorm:"size:100" json:"company,omitempty"`

	// MonthlyIncome 月收入（卢比）
	MonthlyIncome *int64 `json:"monthly_income,omitempty"`

	// IsActive 账号是否可用
	IsActive bool `gorm:"default:true" json:"is_active"`

	// LastLogin 最近一次登录时间
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
