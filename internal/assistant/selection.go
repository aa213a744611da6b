// Package assistant 实现聊天助手的工具路由层
// 包括参数抽取、按优先级的工具选择、工具执行、提示词拼装与对话编排
package assistant

// 工具名称
const (
	ToolCalculateEMI     = "calculate_emi"
	ToolCheckEligibility = "check_loan_eligibility"
	ToolFinancialTips    = "get_financial_tips"
)

// Selection 路由结果
// 取值只可能是 NoTool、EMIParams、EligibilityParams、TipsParams 之一，
// 调用方通过 type switch 处理每一种情况
type Selection interface {
	// ToolName 返回被选中的工具名，NoTool 返回空串
	ToolName() string
	selection()
}

// NoTool 表示没有匹配任何工具，走普通对话
type NoTool struct{}

// EMIParams calculate_emi 的参数
type EMIParams struct {
	Principal    int64   `json:"principal"`
	Rate         float64 `json:"rate"`
	TenureMonths int     `json:"tenure"`
}

// EligibilityParams check_loan_eligibility 的参数
type EligibilityParams struct {
	MonthlyIncome int64 `json:"monthlyIncome"`
	LoanAmount    int64 `json:"loanAmount"`
	CibilScore    int   `json:"cibilScore"`
}

// TipsParams get_financial_tips 的参数
type TipsParams struct {
	Category string `json:"category"`
}

func (NoTool) ToolName() string            { return "" }
func (EMIParams) ToolName() string         { return ToolCalculateEMI }
func (EligibilityParams) ToolName() string { return ToolCheckEligibility }
func (TipsParams) ToolName() string        { return ToolFinancialTips }

func (NoTool) selection()            {}
func (EMIParams) selection()         {}
func (EligibilityParams) selection() {}
func (TipsParams) selection()        {}
