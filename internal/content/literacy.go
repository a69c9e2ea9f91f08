package content

// Card is an educational card rendered on the literacy pages
type Card struct {
	Title       string
	Level       string
	Return      string
	Description string
	Example     string
	Examples    []string
	Gradient    string
}

// Investments is the investment ladder, ordered from safest to riskiest
var Investments = []Card{
	{
		Title:       "Savings Accounts & Fixed Deposits",
		Level:       "Ultra Safe",
		Return:      "R50 - R250 per R5,000 yearly",
		Description: "Your money is 100% safe with banks like FNB or Standard Bank. Low-risk, ideal for short-term goals or emergency funds.",
		Example:     "Put R10,000 in a savings account at 5% = R500 interest per year",
		Gradient:    "green",
	},
	{
		Title:       "Government Bonds (RSA Retail Bonds)",
		Level:       "Very Safe",
		Return:      "R100 - R300 per R5,000 yearly",
		Description: "Government bonds are loans you give to the South African government. Very secure and pay periodic interest.",
		Example:     "R5,000 government bond at 6% = R300 yearly",
		Gradient:    "blue",
	},
	{
		Title:       "Corporate Bonds & Unit Trusts",
		Level:       "Moderately Safe",
		Return:      "R150 - R400 per R5,000 yearly",
		Description: "Invest in companies with moderate growth potential. Higher returns than government bonds but some risk.",
		Example:     "A balanced unit trust: R5,000 could grow by R350+ annually",
		Gradient:    "amber",
	},
	{
		Title:       "JSE Index Funds (Top 40)",
		Level:       "Moderate Risk",
		Return:      "R300 - R500 per R5,000 yearly",
		Description: "Own pieces of South Africa's top 40 companies. Diversified and historically solid growth.",
		Example:     "A Top 40 ETF: R10,000 has historically grown R800-1,200 per year",
		Gradient:    "purple",
	},
	{
		Title:       "Individual JSE Stocks",
		Level:       "High Risk",
		Return:      "R0 - R2,500+ per R5,000 yearly",
		Description: "High-risk, high-reward. Prices fluctuate based on market trends and company performance.",
		Example:     "R5,000 in a single share could become R0 or R15,000+ in a year",
		Gradient:    "orange",
	},
	{
		Title:       "Crypto (Bitcoin, Ethereum)",
		Level:       "Extreme Risk",
		Return:      "R0 - R25,000+ per R5,000 yearly",
		Description: "Highly volatile digital assets. Only invest money you can afford to lose.",
		Example:     "R1,000 in Bitcoin could become R100 or R10,000 within months",
		Gradient:    "red",
	},
}

// InterestConcepts explains simple and compound interest
var InterestConcepts = []Card{
	{
		Title:       "What is Interest?",
		Description: "Interest is the cost of borrowing money or the reward for saving it. It is expressed as a percentage rate.",
		Gradient:    "blue",
	},
	{
		Title:       "Simple Interest",
		Description: "Calculated only on the original principal. Formula: SI = P × R × T.",
		Examples: []string{
			"Loan Example: Borrow R10,000 at 10% per year for 3 years → Interest = R3,000",
			"Investment Example: Deposit R5,000 at 6% for 2 years → Interest = R600",
		},
		Gradient: "green",
	},
	{
		Title:       "Compound Interest",
		Description: "Calculated on principal + accumulated interest. Formula: CI = P × (1 + R/n)^(n×T) - P.",
		Examples: []string{
			"Investment: R5,000 at 6% annually, compounded quarterly for 2 years → ≈ R636 interest",
			"Loan: R10,000 at 10% annually, compounded monthly for 3 years → ≈ R3,482 interest",
		},
		Gradient: "purple",
	},
	{
		Title:       "Compounding Periods",
		Description: "How often interest is applied: annually, semi-annually, quarterly, monthly, daily. More frequent compounding increases total interest.",
		Examples: []string{
			"Monthly vs annually: R5,000 at 6% compounded monthly earns more than annually",
			"Short-term loan compounded daily accumulates more interest than monthly",
		},
		Gradient: "amber",
	},
}
