package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      float64
		tenure    int
		wantEMI   int64
		wantTotal int64
	}{
		{"five lakh 8.5% five years", 500000, 8.5, 60, 10258, 615496},
		{"ten lakh 10% ten years", 1000000, 10, 120, 13215, 1585809},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CalculateEMI(tt.principal, tt.rate, tt.tenure)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEMI, res.EMI)
			assert.Equal(t, tt.wantTotal, res.TotalAmount)
			assert.Equal(t, tt.wantTotal-tt.principal, res.TotalInterest)
			assert.Equal(t, tt.principal, res.Principal)
			assert.Equal(t, tt.rate, res.Rate)
			assert.Equal(t, tt.tenure, res.Tenure)
		})
	}
}

func TestCalculateEMI_InterestMatchesRoundedTotal(t *testing.T) {
	for _, p := range []int64{1, 999, 150000, 2500000, 12345678} {
		for _, r := range []float64{0.1, 7.25, 8.5, 13.99, 24} {
			for _, n := range []int{1, 12, 61, 240, 360} {
				res, err := CalculateEMI(p, r, n)
				require.NoError(t, err)
				assert.Equal(t, res.TotalAmount-p, res.TotalInterest)

				// emi 与 total 各自独立取整
				g := math.Pow(1+r/1200, float64(n))
				raw := float64(p) * (r / 1200) * g / (g - 1)
				assert.Equal(t, int64(math.Round(raw)), res.EMI)
				assert.Equal(t, int64(math.Round(raw*float64(n))), res.TotalAmount)
			}
		}
	}
}

func TestCalculateEMI_ZeroRate(t *testing.T) {
	res, err := CalculateEMI(100000, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(14286), res.EMI)
	assert.Equal(t, int64(100000), res.TotalAmount)
	assert.Equal(t, int64(0), res.TotalInterest)
}

func TestCalculateEMI_Invalid(t *testing.T) {
	_, err := CalculateEMI(100000, 8.5, 0)
	assert.ErrorIs(t, err, ErrInvalidTenure)

	_, err = CalculateEMI(100000, 8.5, -12)
	assert.ErrorIs(t, err, ErrInvalidTenure)

	_, err = CalculateEMI(0, 8.5, 12)
	assert.ErrorIs(t, err, ErrInvalidPrincipal)

	_, err = CalculateEMI(100000, -1, 12)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = CalculateEMI(100000, math.NaN(), 12)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestCalculateEMI_OutOfRange(t *testing.T) {
	// (1+r)^n 溢出为 +Inf，月供变成 NaN
	_, err := CalculateEMI(500000, 99999, 360)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = CalculateEMI(math.MaxInt64, 24, 360)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// 高但有限的利率仍可计算，且利息恒等式成立
	res, err := CalculateEMI(500000, 99999, 12)
	require.NoError(t, err)
	assert.Equal(t, res.TotalAmount-res.Principal, res.TotalInterest)
	assert.Greater(t, res.EMI, int64(0))
}
