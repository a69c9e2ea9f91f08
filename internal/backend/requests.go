package backend

// PlanRequest is the planner input
type PlanRequest struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	Age             int     `json:"age"`
	Dependents      int     `json:"dependents"`
	TotalDebt       float64 `json:"total_debt"`
	CurrentSavings  float64 `json:"current_savings"`
	RiskTolerance   string  `json:"risk_tolerance"`
}

// InvestmentRequest is the investor profile used for suggestions
type InvestmentRequest struct {
	Age                  int     `json:"age"`
	MonthlyIncome        float64 `json:"monthly_income"`
	CurrentSavings       float64 `json:"current_savings"`
	InvestmentAmount     float64 `json:"investment_amount"`
	RiskTolerance        string  `json:"risk_tolerance"`
	InvestmentExperience string  `json:"investment_experience"`
	InvestmentTimeline   int     `json:"investment_timeline"`
}

// Holding is one position in a portfolio
type Holding struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

// PortfolioRequest is a portfolio to analyse
type PortfolioRequest struct {
	Holdings []Holding `json:"holdings"`
}

// AffordabilityRequest describes a loan application
type AffordabilityRequest struct {
	MonthlyIncome       float64 `json:"monthly_income"`
	MonthlyDebtPayments float64 `json:"monthly_debt_payments"`
	LoanAmount          float64 `json:"loan_amount"`
	InterestRate        float64 `json:"interest_rate"`
	LoanTermMonths      int     `json:"loan_term_months"`
	CreditScore         int     `json:"credit_score"`
	EmploymentYears     int     `json:"employment_years"`
	LoanType            string  `json:"loan_type"`
}

// LoanCalculationRequest holds the repayment calculator inputs. Rate is an
// annual percentage and Term is in months.
type LoanCalculationRequest struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Term      int     `json:"term"`
}

// LoanRecommendationRequest is the input for loan product suggestions
type LoanRecommendationRequest struct {
	MonthlyIncome float64 `json:"monthly_income"`
	CreditScore   int     `json:"credit_score"`
	LoanPurpose   string  `json:"loan_purpose"`
}

// FraudRequest is a single card transaction to score
type FraudRequest struct {
	Amount           float64 `json:"amount"`
	Hour             int     `json:"hour"`
	MerchantCategory string  `json:"merchant_category"`
	Location         string  `json:"location"`
}

// Transaction is one entry of a transaction history. Timestamp is ISO 8601.
type Transaction struct {
	Timestamp string  `json:"timestamp"`
	Amount    float64 `json:"amount"`
	Location  string  `json:"location,omitempty"`
}

// PatternRequest is a transaction history to scan for anomalies
type PatternRequest struct {
	Transactions []Transaction `json:"transactions"`
}

// SecurityProfile lists the account protections a user has in place
type SecurityProfile struct {
	Has2FA                   bool `json:"has_2fa"`
	HasTransactionAlerts     bool `json:"has_transaction_alerts"`
	RecentSuspiciousActivity bool `json:"recent_suspicious_activity"`
}
