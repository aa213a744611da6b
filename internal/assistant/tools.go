package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/tools"

	"crednest-server/internal/finance"
)

// Toolbox 已注册工具表，按名称查找
// 每个工具接收自己参数类型的 JSON，返回缩进后的 JSON 结果
type Toolbox map[string]tools.Tool

// NewToolbox 注册全部本地金融工具
func NewToolbox() Toolbox {
	tb := Toolbox{}
	for _, t := range []tools.Tool{emiTool{}, eligibilityTool{}, tipsTool{}} {
		tb[t.Name()] = t
	}
	return tb
}

// Run 执行路由选中的工具
// 参数:
//   - sel: 路由结果，不能是 NoTool
//
// 返回:
//   - string: 工具结果 JSON
func (tb Toolbox) Run(ctx context.Context, sel Selection) (string, error) {
	t, ok := tb[sel.ToolName()]
	if !ok {
		return "", fmt.Errorf("tool %q not registered", sel.ToolName())
	}
	input, err := json.Marshal(sel)
	if err != nil {
		return "", err
	}
	return t.Call(ctx, string(input))
}

func indentJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ==================== calculate_emi ====================

type emiTool struct{}

func (emiTool) Name() string { return ToolCalculateEMI }

func (emiTool) Description() string {
	return "Calculate the monthly EMI, total payable amount and total interest for a loan. " +
		`Input: {"principal": rupees, "rate": annual percent, "tenure": months}`
}

func (emiTool) Call(_ context.Context, input string) (string, error) {
	var p EMIParams
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		return "", fmt.Errorf("invalid calculate_emi input: %w", err)
	}
	res, err := finance.CalculateEMI(p.Principal, p.Rate, p.TenureMonths)
	if err != nil {
		return "", err
	}
	return indentJSON(res)
}

// ==================== check_loan_eligibility ====================

type eligibilityTool struct{}

func (eligibilityTool) Name() string { return ToolCheckEligibility }

func (eligibilityTool) Description() string {
	return "Check whether a loan amount is within 60x monthly income and the CIBIL score is at least 650. " +
		`Input: {"monthlyIncome": rupees, "loanAmount": rupees, "cibilScore": optional, default 750}`
}

func (eligibilityTool) Call(_ context.Context, input string) (string, error) {
	var p EligibilityParams
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		return "", fmt.Errorf("invalid check_loan_eligibility input: %w", err)
	}
	return indentJSON(finance.CheckEligibility(p.MonthlyIncome, p.LoanAmount, p.CibilScore))
}

// ==================== get_financial_tips ====================

type tipsTool struct{}

func (tipsTool) Name() string { return ToolFinancialTips }

func (tipsTool) Description() string {
	return "Return four personal finance tips for a category: saving, investing, budgeting, debt or credit_score. " +
		`Input: {"category": name}`
}

func (tipsTool) Call(_ context.Context, input string) (string, error) {
	var p TipsParams
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		return "", fmt.Errorf("invalid get_financial_tips input: %w", err)
	}
	return indentJSON(finance.GetFinancialTips(p.Category))
}
