package content

import (
	"sync"

	"financecoach/internal/quiz"
)

// Question categories. They match the tips database keys so weak quiz
// categories can be turned into tip recommendations.
const (
	CategoryBudgeting = "budgeting"
	CategorySaving    = "saving"
	CategoryInvesting = "investing"
	CategoryDebt      = "debt"
	CategoryInterest  = "interest"
)

var defaultQuestions = []quiz.Question{
	{
		Prompt:        "What percentage of your income should ideally go to savings?",
		Options:       []string{"5%", "10%", "20%", "30%"},
		CorrectOption: "20%",
		Explanation:   "The 50/30/20 rule puts 20% of take-home pay towards savings and extra debt repayment.",
		Category:      CategorySaving,
	},
	{
		Prompt: "What is compound interest?",
		Options: []string{
			"Interest earned only on the principal amount",
			"Interest earned on both principal and previously earned interest",
			"Interest that is charged monthly",
			"Interest that never changes",
		},
		CorrectOption: "Interest earned on both principal and previously earned interest",
		Explanation:   "Compound interest is earned on the original principal and on the interest already added to it.",
		Category:      CategoryInterest,
	},
	{
		Prompt:        "How many months of expenses should you keep in an emergency fund?",
		Options:       []string{"1-2 months", "3-6 months", "8-10 months", "12 months"},
		CorrectOption: "3-6 months",
		Explanation:   "Three to six months of living expenses covers most job losses and unexpected bills.",
		Category:      CategorySaving,
	},
	{
		Prompt:        "You deposit R5,000 at 6% simple interest for 2 years. How much interest do you earn?",
		Options:       []string{"R300", "R600", "R618", "R6,000"},
		CorrectOption: "R600",
		Explanation:   "Simple interest is P × R × T: R5,000 × 0.06 × 2 = R600.",
		Category:      CategoryInterest,
	},
	{
		Prompt:        "Which of these investments carries the lowest risk?",
		Options:       []string{"Individual JSE stocks", "Bitcoin", "A bank fixed deposit", "A JSE Top 40 index fund"},
		CorrectOption: "A bank fixed deposit",
		Explanation:   "Fixed deposits at a registered bank are the safest option on the investment ladder, with lower returns to match.",
		Category:      CategoryInvesting,
	},
	{
		Prompt:        "In the 50/30/20 budget, what does the 50% cover?",
		Options:       []string{"Wants", "Needs", "Savings", "Investments"},
		CorrectOption: "Needs",
		Explanation:   "Half of income goes to needs such as rent, groceries and transport; 30% to wants; 20% to savings.",
		Category:      CategoryBudgeting,
	},
	{
		Prompt:        "Which debt repayment method pays off the highest-interest debt first?",
		Options:       []string{"Debt snowball", "Debt avalanche", "Minimum payments", "Debt consolidation"},
		CorrectOption: "Debt avalanche",
		Explanation:   "The avalanche method targets the highest rate first, which minimises total interest paid.",
		Category:      CategoryDebt,
	},
	{
		Prompt:        "What does diversification mean for an investor?",
		Options:       []string{"Buying only one strong share", "Spreading money across different asset classes", "Timing the market", "Keeping all savings in cash"},
		CorrectOption: "Spreading money across different asset classes",
		Explanation:   "Spreading investments means a loss in one holding has less effect on the whole portfolio.",
		Category:      CategoryInvesting,
	},
	{
		Prompt:        "Paying only the minimum on a credit card each month usually means:",
		Options:       []string{"You avoid all interest", "Your credit score drops immediately", "You pay much more interest over time", "The debt is cleared within a year"},
		CorrectOption: "You pay much more interest over time",
		Explanation:   "Minimum payments barely cover interest, so the balance lingers and interest keeps compounding.",
		Category:      CategoryDebt,
	},
	{
		Prompt:        "What is zero-based budgeting?",
		Options:       []string{"Spending nothing for a month", "Giving every rand a job so income minus expenses is zero", "Starting each year with no savings", "Budgeting only for fixed costs"},
		CorrectOption: "Giving every rand a job so income minus expenses is zero",
		Explanation:   "A zero-based budget assigns all income to spending, saving or debt so nothing is left unplanned.",
		Category:      CategoryBudgeting,
	},
}

var (
	bankOnce    sync.Once
	defaultBank *quiz.Bank
)

// DefaultBank returns the shared literacy quiz bank. The bank is validated on
// first use and panics if the compiled-in questions are malformed.
func DefaultBank() *quiz.Bank {
	bankOnce.Do(func() {
		defaultBank = quiz.MustBank(defaultQuestions)
	})
	return defaultBank
}
