package finance

import (
	"fmt"
	"math"
)

// 资格规则常量
const (
	DefaultCibilScore  = 750 // 未提供信用分时的默认值
	MinCibilScore      = 650 // 最低信用分要求
	IncomeMultiplier   = 60  // 最高可贷额度 = 月收入 × 60
	StatusApproved     = "approved"
	StatusRejected     = "rejected"
	recommendEligible  = "You are eligible for this loan! You can proceed with the application."
	recommendLowScore  = "Your CIBIL score is below the minimum requirement. Work on improving it to 650+."
	recommendTooHighFm = "Your maximum eligible loan amount is %s. Consider reducing the loan amount."
)

// MaxMonthlyIncome 月收入上限，保证乘以 IncomeMultiplier 不溢出
const MaxMonthlyIncome = math.MaxInt64 / IncomeMultiplier

// EligibilityResult 贷款资格判定结果
type EligibilityResult struct {
	Eligible          bool   `json:"eligible"`
	Status            string `json:"status"`
	MonthlyIncome     int64  `json:"monthlyIncome"`
	RequestedAmount   int64  `json:"requestedAmount"`
	MaxEligibleAmount int64  `json:"maxEligibleAmount"`
	CibilScore        int    `json:"cibilScore"`
	Recommendation    string `json:"recommendation"`
}

// CheckEligibility 判断贷款资格
// 可贷 = 申请额 ≤ 月收入×60 且信用分 ≥ 650。
// 信用分不足时优先给出信用分建议，否则给出最高可贷额度建议。
// cibilScore 传 0 时按 DefaultCibilScore 处理。
// 月收入超过 MaxMonthlyIncome 时最高可贷额度按 math.MaxInt64 封顶。
func CheckEligibility(monthlyIncome, loanAmount int64, cibilScore int) *EligibilityResult {
	if cibilScore == 0 {
		cibilScore = DefaultCibilScore
	}

	maxEligible := int64(math.MaxInt64)
	if monthlyIncome <= MaxMonthlyIncome {
		maxEligible = monthlyIncome * IncomeMultiplier
	}
	eligible := loanAmount <= maxEligible && cibilScore >= MinCibilScore

	result := &EligibilityResult{
		Eligible:          eligible,
		Status:            StatusRejected,
		MonthlyIncome:     monthlyIncome,
		RequestedAmount:   loanAmount,
		MaxEligibleAmount: maxEligible,
		CibilScore:        cibilScore,
	}

	switch {
	case eligible:
		result.Status = StatusApproved
		result.Recommendation = recommendEligible
	case cibilScore < MinCibilScore:
		result.Recommendation = recommendLowScore
	default:
		result.Recommendation = fmt.Sprintf(recommendTooHighFm, FormatINR(maxEligible))
	}
	return result
}
