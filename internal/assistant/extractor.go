package assistant

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"crednest-server/internal/finance"
)

// 抽取规则是尽力而为的启发式匹配，不是语法分析：
// 一条消息里出现多个数字时，可能把错误的数字绑定到错误的字段上。
var (
	amountPattern = regexp.MustCompile(`(?i)₹?\s*(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:(lakhs?|lacs?)\b)?`)
	ratePattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	tenurePattern = regexp.MustCompile(`(?i)(\d+)\s*(years?|yrs?|months?|mon)`)
	incomePattern = regexp.MustCompile(`(?i)income.*?₹?\s*(\d+(?:,\d+)*)`)
	loanPattern   = regexp.MustCompile(`(?i)loan.*?₹?\s*(\d+(?:,\d+)*)`)
)

const lakh = 100000

// maxExtractedAmount 抽取金额上限，超过时无法安全转换为 int64
const maxExtractedAmount = float64(1 << 62)

type tipKeyword struct {
	keyword  string
	category string
}

// tipKeywords 分类关键字，按优先级排列；credit_score 以 "credit score" 匹配
var tipKeywords = func() []tipKeyword {
	out := make([]tipKeyword, 0, len(finance.TipCategories))
	for _, cat := range finance.TipCategories {
		out = append(out, tipKeyword{keyword: strings.ReplaceAll(cat, "_", " "), category: cat})
	}
	return out
}()

// ExtractEMI 抽取本金、年利率、期限三元组
// 金额带 lakh/lac 单位时乘以 100,000；期限单位为年时乘以 12 换算为月。
// 三项缺一、本金/期限为 0 或计算结果溢出时返回 false。
func ExtractEMI(text string) (EMIParams, bool) {
	am := amountPattern.FindStringSubmatch(text)
	rm := ratePattern.FindStringSubmatch(text)
	tm := tenurePattern.FindStringSubmatch(text)
	if am == nil || rm == nil || tm == nil {
		return EMIParams{}, false
	}

	amount, err := parseNumber(am[1])
	if err != nil {
		return EMIParams{}, false
	}
	if am[2] != "" {
		amount *= lakh
	}

	rate, err := strconv.ParseFloat(rm[1], 64)
	if err != nil {
		return EMIParams{}, false
	}

	tenure, err := strconv.Atoi(tm[1])
	if err != nil {
		return EMIParams{}, false
	}
	if isYearUnit(tm[2]) {
		tenure *= 12
	}

	if amount > maxExtractedAmount {
		return EMIParams{}, false
	}
	principal := int64(math.Round(amount))
	if principal <= 0 || tenure <= 0 {
		return EMIParams{}, false
	}
	// 利率过高导致结果溢出时同样视为未命中
	if _, err := finance.CalculateEMI(principal, rate, tenure); err != nil {
		return EMIParams{}, false
	}

	return EMIParams{Principal: principal, Rate: rate, TenureMonths: tenure}, true
}

// ExtractEligibility 抽取 "income" 与 "loan" 之后的数字
// 两项都出现且未超出金额上限才返回 true；信用分取默认值
func ExtractEligibility(text string) (EligibilityParams, bool) {
	im := incomePattern.FindStringSubmatch(text)
	lm := loanPattern.FindStringSubmatch(text)
	if im == nil || lm == nil {
		return EligibilityParams{}, false
	}

	income, err := parseNumber(im[1])
	if err != nil {
		return EligibilityParams{}, false
	}
	loan, err := parseNumber(lm[1])
	if err != nil {
		return EligibilityParams{}, false
	}
	if income > float64(finance.MaxMonthlyIncome) || loan > maxExtractedAmount {
		return EligibilityParams{}, false
	}

	return EligibilityParams{
		MonthlyIncome: int64(income),
		LoanAmount:    int64(loan),
		CibilScore:    finance.DefaultCibilScore,
	}, true
}

// ExtractTipsCategory 返回第一个出现在文本中的分类关键字
func ExtractTipsCategory(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range tipKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.category, true
		}
	}
	return "", false
}

// parseNumber 去掉千分位逗号后解析
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func isYearUnit(unit string) bool {
	u := strings.ToLower(unit)
	return strings.HasPrefix(u, "y")
}
