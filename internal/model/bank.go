package model

import (
	"time"
)

// 贷款类型
const (
	LoanTypeHome      = "home"
	LoanTypePersonal  = "personal"
	LoanTypeCar       = "car"
	LoanTypeEducation = "education"
)

// Bank 银行贷款产品信息
// 对应数据库表 banks，只读目录数据，由 seed-banks 命令写入
type Bank struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	LogoURL string `gorm:"size:500" json:"logo_url,omitempty"`

	// 各类贷款年利率（百分比）
	HomeLoanRate      float64 `json:"home_loan_rate"`
	PersonalLoanRate  float64 `json:"personal_loan_rate"`
	CarLoanRate       float64 `json:"car_loan_rate"`
	EducationLoanRate float64 `json:"education_loan_rate"`

	// ProcessingFee 手续费（贷款金额的百分比）
	ProcessingFee float64 `json:"processing_fee"`

	MinCibilScore  int   `gorm:"default:650" json:"min_cibil_score"`
	MaxLoanAmount  int64 `json:"max_loan_amount"`
	MinLoanAmount  int64 `json:"min_loan_amount"`
	MaxTenureYears int   `json:"max_tenure_years"`

	Description  string  `gorm:"type:text" json:"description,omitempty"`
	Website      string  `gorm:"size:200" json:"website,omitempty"`
	CustomerCare string  `gorm:"size:50" json:"customer_care,omitempty"`
	Rating       float64 `gorm:"default:0" json:"rating"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Bank) TableName() string {
	return "banks"
}

// RateColumn 返回贷款类型对应的利率列名，未知类型返回空串
func RateColumn(loanType string) string {
	switch loanType {
	case LoanTypeHome:
		return "home_loan_rate"
	case LoanTypePersonal:
		return "personal_loan_rate"
	case LoanTypeCar:
		return "car_loan_rate"
	case LoanTypeEducation:
		return "education_loan_rate"
	}
	return ""
}
