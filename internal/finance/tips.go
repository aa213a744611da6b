package finance

// 理财建议分类
const (
	CategorySaving      = "saving"
	CategoryInvesting   = "investing"
	CategoryBudgeting   = "budgeting"
	CategoryDebt        = "debt"
	CategoryCreditScore = "credit_score"
)

// TipCategories 按匹配优先级排列的分类
var TipCategories = []string{
	CategorySaving,
	CategoryInvesting,
	CategoryBudgeting,
	CategoryDebt,
	CategoryCreditScore,
}

var tipsTable = map[string][]string{
	CategorySaving: {
		"Follow the 50-30-20 rule: 50% needs, 30% wants, 20% savings",
		"Automate your savings with recurring deposits",
		"Build an emergency fund covering 6 months of expenses",
		"Use high-interest savings accounts or fixed deposits",
	},
	CategoryInvesting: {
		"Start investing early to benefit from compound interest",
		"Diversify your portfolio across different asset classes",
		"Consider SIP (Systematic Investment Plan) for mutual funds",
		"Review and rebalance your portfolio annually",
	},
	CategoryBudgeting: {
		"Track all your expenses for at least a month",
		"Use budgeting apps to monitor spending in real-time",
		"Set realistic budget limits for each category",
		"Review and adjust your budget monthly",
	},
	CategoryDebt: {
		"Pay off high-interest debt first (avalanche method)",
		"Consolidate multiple debts if possible",
		"Avoid taking new debt while paying off existing ones",
		"Negotiate with lenders for better interest rates",
	},
	CategoryCreditScore: {
		"Pay all bills and EMIs on time",
		"Keep credit utilization below 30%",
		"Maintain a healthy mix of secured and unsecured credit",
		"Check your credit report regularly for errors",
	},
}

// TipsResult 理财建议
type TipsResult struct {
	Category string   `json:"category"`
	Tips     []string `json:"tips"`
}

// GetFinancialTips 返回分类对应的 4 条建议
// 未知分类返回 saving 分类的建议，Category 字段保留调用方传入的值
func GetFinancialTips(category string) *TipsResult {
	tips, ok := tipsTable[category]
	if !ok {
		tips = tipsTable[CategorySaving]
	}
	out := make([]string, len(tips))
	copy(out, tips)
	return &TipsResult{Category: category, Tips: out}
}
