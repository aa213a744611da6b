package assistant

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crednest-server/internal/finance"
)

func TestToolbox_Registered(t *testing.T) {
	tb := NewToolbox()
	for _, name := range []string{ToolCalculateEMI, ToolCheckEligibility, ToolFinancialTips} {
		tool, ok := tb[name]
		require.True(t, ok, name)
		assert.Equal(t, name, tool.Name())
		assert.NotEmpty(t, tool.Description())
	}
}

func TestToolbox_RunEMI(t *testing.T) {
	out, err := NewToolbox().Run(context.Background(), EMIParams{Principal: 500000, Rate: 8.5, TenureMonths: 60})
	require.NoError(t, err)

	var res finance.EMIResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(10258), res.EMI)
	assert.Equal(t, 60, res.Tenure)
	assert.Contains(t, out, "\n  \"emi\": 10258")
}

func TestToolbox_RunEligibility(t *testing.T) {
	out, err := NewToolbox().Run(context.Background(), EligibilityParams{MonthlyIncome: 50000, LoanAmount: 2000000, CibilScore: 750})
	require.NoError(t, err)

	var res finance.EligibilityResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Eligible)
	assert.Equal(t, "approved", res.Status)
	assert.Equal(t, int64(3000000), res.MaxEligibleAmount)
}

func TestToolbox_RunTips(t *testing.T) {
	out, err := NewToolbox().Run(context.Background(), TipsParams{Category: "investing"})
	require.NoError(t, err)

	var res finance.TipsResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, finance.GetFinancialTips("investing").Tips, res.Tips)
}

func TestToolbox_RunNoTool(t *testing.T) {
	_, err := NewToolbox().Run(context.Background(), NoTool{})
	assert.Error(t, err)
}

func TestToolbox_InvalidEMIInput(t *testing.T) {
	_, err := NewToolbox()[ToolCalculateEMI].Call(context.Background(), `{"principal":100000,"rate":8,"tenure":0}`)
	assert.ErrorIs(t, err, finance.ErrInvalidTenure)

	_, err = NewToolbox()[ToolCalculateEMI].Call(context.Background(), `not json`)
	assert.Error(t, err)
}
