// Package finance 提供与存储、网络无关的金融计算
// 包括等额本息月供、贷款资格规则与理财建议查表
package finance

import (
	"errors"
	"math"
)

var (
	ErrInvalidPrincipal = errors.New("贷款本金必须大于 0")
	ErrInvalidRate      = errors.New("年利率不能为负数")
	ErrInvalidTenure    = errors.New("贷款期限必须大于 0 个月")
	ErrOutOfRange       = errors.New("计算结果超出可表示的金额范围")
)

// maxAmount 可安全转换为 int64 的最大金额；2^63 本身不能用 float64 精确表示，取更小的 2^62
const maxAmount = float64(1 << 62)

// EMIResult 月供计算结果，金额单位均为卢比并取整
type EMIResult struct {
	Principal     int64   `json:"principal"`
	Rate          float64 `json:"rate"`   // 年利率（百分比）
	Tenure        int     `json:"tenure"` // 期限（月）
	EMI           int64   `json:"emi"`
	TotalAmount   int64   `json:"totalAmount"`
	TotalInterest int64   `json:"totalInterest"`
}

// CalculateEMI 按等额本息公式计算月供
// emi = P·r·(1+r)^n / ((1+r)^n − 1)，r = 年利率 / 1200
// emi 与还款总额各自独立四舍五入，利息 = 取整后的还款总额 − 本金。
// 年利率为 0 时公式分母为 0，此时月供按 P/n 计算，利息为 0。
// 利率过高导致 (1+r)^n 溢出、或金额超出 int64 范围时返回 ErrOutOfRange。
// 参数:
//   - principal: 本金
//   - annualRatePercent: 年利率，如 8.5 表示 8.5%
//   - tenureMonths: 期限（月）
func CalculateEMI(principal int64, annualRatePercent float64, tenureMonths int) (*EMIResult, error) {
	if principal <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if annualRatePercent < 0 || math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) {
		return nil, ErrInvalidRate
	}
	if tenureMonths <= 0 {
		return nil, ErrInvalidTenure
	}

	p := float64(principal)
	n := float64(tenureMonths)

	var emi, total float64
	if annualRatePercent == 0 {
		emi = p / n
		total = p
	} else {
		r := annualRatePercent / 1200
		growth := math.Pow(1+r, n)
		emi = p * r * growth / (growth - 1)
		total = emi * n
	}
	if !inAmountRange(emi) || !inAmountRange(total) {
		return nil, ErrOutOfRange
	}

	totalAmount := int64(math.Round(total))
	return &EMIResult{
		Principal:     principal,
		Rate:          annualRatePercent,
		Tenure:        tenureMonths,
		EMI:           int64(math.Round(emi)),
		TotalAmount:   totalAmount,
		TotalInterest: totalAmount - principal,
	}, nil
}

func inAmountRange(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v <= maxAmount
}
