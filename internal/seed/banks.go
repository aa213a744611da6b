// Package seed 提供银行目录的初始数据
package seed

import "crednest-server/internal/model"

// Banks 返回主要印度贷款银行的目录数据
func Banks() []model.Bank {
	return []model.Bank{
		{
			Name:              "State Bank of India (SBI)",
			LogoURL:           "https://www.sbi.co.in/documents/16012/1400784/SBI-Logo.jpg",
			HomeLoanRate:      8.50,
			PersonalLoanRate:  10.30,
			CarLoanRate:       8.70,
			EducationLoanRate: 9.05,
			ProcessingFee:     0.35,
			MinCibilScore:     750,
			MaxLoanAmount:     10000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "India's largest public sector bank offering comprehensive loan solutions",
			Website:           "https://www.sbi.co.in",
			CustomerCare:      "1800-11-2211",
			Rating:            4.5,
		},
		{
			Name:              "HDFC Bank",
			HomeLoanRate:      8.60,
			PersonalLoanRate:  10.50,
			CarLoanRate:       8.75,
			EducationLoanRate: 9.50,
			ProcessingFee:     0.50,
			MinCibilScore:     750,
			MaxLoanAmount:     7500000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "Leading private sector bank with quick loan approvals",
			Website:           "https://www.hdfcbank.com",
			CustomerCare:      "1800-202-6161",
			Rating:            4.6,
		},
		{
			Name:              "ICICI Bank",
			HomeLoanRate:      8.65,
			PersonalLoanRate:  10.75,
			CarLoanRate:       8.80,
			EducationLoanRate: 9.60,
			ProcessingFee:     0.50,
			MinCibilScore:     750,
			MaxLoanAmount:     7500000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "Comprehensive banking solutions with digital-first approach",
			Website:           "https://www.icicibank.com",
			CustomerCare:      "1860-120-7777",
			Rating:            4.5,
		},
		{
			Name:              "Axis Bank",
			HomeLoanRate:      8.70,
			PersonalLoanRate:  10.49,
			CarLoanRate:       8.75,
			EducationLoanRate: 9.70,
			ProcessingFee:     0.50,
			MinCibilScore:     750,
			MaxLoanAmount:     5000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "Fast loan processing with competitive interest rates",
			Website:           "https://www.axisbank.com",
			CustomerCare:      "1860-419-5555",
			Rating:            4.4,
		},
		{
			Name:              "Punjab National Bank (PNB)",
			HomeLoanRate:      8.40,
			PersonalLoanRate:  9.95,
			CarLoanRate:       8.65,
			EducationLoanRate: 8.85,
			ProcessingFee:     0.35,
			MinCibilScore:     700,
			MaxLoanAmount:     5000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "Government bank with affordable loan options",
			Website:           "https://www.pnbindia.in",
			CustomerCare:      "1800-180-2222",
			Rating:            4.2,
		},
		{
			Name:              "Bank of Baroda",
			HomeLoanRate:      8.45,
			PersonalLoanRate:  10.15,
			CarLoanRate:       8.70,
			EducationLoanRate: 8.95,
			ProcessingFee:     0.30,
			MinCibilScore:     700,
			MaxLoanAmount:     5000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "Trusted public sector bank with extensive network",
			Website:           "https://www.bankofbaroda.in",
			CustomerCare:      "1800-258-4455",
			Rating:            4.3,
		},
		{
			Name:              "Kotak Mahindra Bank",
			HomeLoanRate:      8.70,
			PersonalLoanRate:  10.99,
			CarLoanRate:       8.85,
			EducationLoanRate: 9.75,
			ProcessingFee:     0.50,
			MinCibilScore:     750,
			MaxLoanAmount:     5000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "Premium banking with personalized loan solutions",
			Website:           "https://www.kotak.com",
			CustomerCare:      "1860-266-2666",
			Rating:            4.5,
		},
		{
			Name:              "IndusInd Bank",
			HomeLoanRate:      8.75,
			PersonalLoanRate:  10.49,
			CarLoanRate:       8.90,
			EducationLoanRate: 9.80,
			ProcessingFee:     0.50,
			MinCibilScore:     750,
			MaxLoanAmount:     5000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    25,
			Description:       "Innovative banking with quick loan disbursals",
			Website:           "https://www.indusind.com",
			CustomerCare:      "1860-500-5004",
			Rating:            4.4,
		},
		{
			Name:              "Yes Bank",
			HomeLoanRate:      8.80,
			PersonalLoanRate:  10.99,
			CarLoanRate:       8.95,
			EducationLoanRate: 9.85,
			ProcessingFee:     0.50,
			MinCibilScore:     750,
			MaxLoanAmount:     5000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    25,
			Description:       "Modern banking solutions with competitive rates",
			Website:           "https://www.yesbank.in",
			CustomerCare:      "1800-1200",
			Rating:            4.2,
		},
		{
			Name:              "Canara Bank",
			HomeLoanRate:      8.40,
			PersonalLoanRate:  10.05,
			CarLoanRate:       8.65,
			EducationLoanRate: 8.90,
			ProcessingFee:     0.35,
			MinCibilScore:     700,
			MaxLoanAmount:     5000000,
			MinLoanAmount:     100000,
			MaxTenureYears:    30,
			Description:       "Reliable public sector bank with low interest rates",
			Website:           "https://www.canarabank.com",
			CustomerCare:      "1800-425-0018",
			Rating:            4.3,
		},
	}
}
