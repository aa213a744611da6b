package finance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var indianEnglish = language.MustParse("en-IN")

// FormatINR 按印度数字分组格式化金额并加 ₹ 前缀，如 ₹30,00,000
func FormatINR(amount int64) string {
	return message.NewPrinter(indianEnglish).Sprintf("₹%d", amount)
}
