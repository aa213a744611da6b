package finance

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEligibility_Approved(t *testing.T) {
	res := CheckEligibility(50000, 2000000, 750)

	assert.True(t, res.Eligible)
	assert.Equal(t, StatusApproved, res.Status)
	assert.Equal(t, int64(3000000), res.MaxEligibleAmount)
	assert.Equal(t, "You are eligible for this loan! You can proceed with the application.", res.Recommendation)
}

func TestCheckEligibility_AmountTooHigh(t *testing.T) {
	res := CheckEligibility(20000, 2000000, 750)

	assert.False(t, res.Eligible)
	assert.Equal(t, StatusRejected, res.Status)
	assert.Equal(t, int64(1200000), res.MaxEligibleAmount)
	assert.True(t, strings.HasPrefix(res.Recommendation, "Your maximum eligible loan amount is ₹"))
	assert.Contains(t, strings.ReplaceAll(res.Recommendation, ",", ""), "₹1200000")
	assert.True(t, strings.HasSuffix(res.Recommendation, "Consider reducing the loan amount."))
}

func TestCheckEligibility_LowScore(t *testing.T) {
	res := CheckEligibility(50000, 1000000, 600)

	assert.False(t, res.Eligible)
	assert.Equal(t, StatusRejected, res.Status)
	assert.Equal(t, "Your CIBIL score is below the minimum requirement. Work on improving it to 650+.", res.Recommendation)
}

func TestCheckEligibility_LowScoreWinsOverAmount(t *testing.T) {
	res := CheckEligibility(10000, 5000000, 500)
	assert.Contains(t, res.Recommendation, "CIBIL score")
}

func TestCheckEligibility_DefaultScore(t *testing.T) {
	res := CheckEligibility(50000, 100000, 0)
	assert.Equal(t, DefaultCibilScore, res.CibilScore)
	assert.True(t, res.Eligible)
}

func TestCheckEligibility_Boundary(t *testing.T) {
	assert.True(t, CheckEligibility(10000, 600000, 650).Eligible)
	assert.False(t, CheckEligibility(10000, 600001, 650).Eligible)
	assert.False(t, CheckEligibility(10000, 600000, 649).Eligible)
}

func TestCheckEligibility_HugeIncomeDoesNotOverflow(t *testing.T) {
	res := CheckEligibility(200000000000000000, 5000000, 750)
	assert.True(t, res.Eligible)
	assert.Equal(t, int64(math.MaxInt64), res.MaxEligibleAmount)

	res = CheckEligibility(MaxMonthlyIncome, math.MaxInt64, 750)
	assert.False(t, res.Eligible)
	assert.Positive(t, res.MaxEligibleAmount)
	assert.NotContains(t, res.Recommendation, "-")
}
