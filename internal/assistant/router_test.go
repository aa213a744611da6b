package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Route(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		text string
		want Selection
	}{
		{"Calculate EMI for 5 lakh at 8.5% for 5 years", EMIParams{Principal: 500000, Rate: 8.5, TenureMonths: 60}},
		{"Give me tips on investing", TipsParams{Category: "investing"}},
		{"Am I eligible with income 50000 for a loan of 2000000?", EligibilityParams{MonthlyIncome: 50000, LoanAmount: 2000000, CibilScore: 750}},
		{"Hello there", NoTool{}},
		{"What is a mutual fund?", NoTool{}},
		{"tips please", NoTool{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.text))
		})
	}
}

func TestRouter_EMIBeforeTips(t *testing.T) {
	sel := NewRouter().Route("calculate emi for 10 lakh at 9% for 10 years and give advice on saving")
	assert.Equal(t, ToolCalculateEMI, sel.ToolName())
}

func TestRouter_FirstTriggerMissDoesNotFallThrough(t *testing.T) {
	r := NewRouter()

	// 含 "calculate" 但缺少数字，不会再尝试 tips 规则
	sel := r.Route("calculate something and give me tips on investing")
	assert.Equal(t, NoTool{}, sel)

	// 含 "eligible" 但缺少数字，不会再尝试 tips 规则
	sel = r.Route("am I eligible? tips on debt")
	assert.Equal(t, NoTool{}, sel)
}

func TestRouter_ZeroTenureIsNotSelected(t *testing.T) {
	sel := NewRouter().Route("calculate emi for 5 lakh at 8% for 0 months")
	assert.Equal(t, NoTool{}, sel)
}

func TestRouter_OverflowingEMIIsNotSelected(t *testing.T) {
	sel := NewRouter().Route("Calculate EMI for 5 lakh at 99999% for 30 years")
	assert.Equal(t, NoTool{}, sel)
}

func TestSelection_ToolName(t *testing.T) {
	assert.Equal(t, "", NoTool{}.ToolName())
	assert.Equal(t, "calculate_emi", EMIParams{}.ToolName())
	assert.Equal(t, "check_loan_eligibility", EligibilityParams{}.ToolName())
	assert.Equal(t, "get_financial_tips", TipsParams{}.ToolName())
}
