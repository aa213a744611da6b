package assistant

import "strings"

// rule 一条路由规则：触发词 + 参数抽取
type rule struct {
	tool     string
	triggers []string
	extract  func(text string) (Selection, bool)
}

// Router 按固定优先级选择工具
// 只评估第一条触发词命中的规则；该规则抽取失败时直接返回 NoTool，
// 不会再尝试后面的规则
type Router struct {
	rules []rule
}

// NewRouter 创建路由器，优先级: EMI > 贷款资格 > 理财建议
func NewRouter() *Router {
	return &Router{
		rules: []rule{
			{
				tool:     ToolCalculateEMI,
				triggers: []string{"emi", "calculate"},
				extract: func(text string) (Selection, bool) {
					p, ok := ExtractEMI(text)
					return p, ok
				},
			},
			{
				tool:     ToolCheckEligibility,
				triggers: []string{"eligible", "eligibility"},
				extract: func(text string) (Selection, bool) {
					p, ok := ExtractEligibility(text)
					return p, ok
				},
			},
			{
				tool:     ToolFinancialTips,
				triggers: []string{"tips", "advice"},
				extract: func(text string) (Selection, bool) {
					cat, ok := ExtractTipsCategory(text)
					return TipsParams{Category: cat}, ok
				},
			},
		},
	}
}

// Route 对消息做工具选择
// 触发词按子串匹配，不区分大小写
func (r *Router) Route(text string) Selection {
	lower := strings.ToLower(text)
	for _, ru := range r.rules {
		if !containsAny(lower, ru.triggers) {
			continue
		}
		if sel, ok := ru.extract(text); ok {
			return sel
		}
		return NoTool{}
	}
	return NoTool{}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
