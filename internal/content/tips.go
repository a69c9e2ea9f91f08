package content

import (
	"slices"
	"strings"
	"time"
)

// Experience levels used by tips, learning paths and resources
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelAll          = "all"
)

// Tip is a short piece of financial advice
type Tip struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
	Daily      bool   `json:"is_daily_tip,omitempty"`
}

var tipsByCategory = map[string][]Tip{
	CategoryBudgeting: {
		{Title: "The 50/30/20 Rule", Content: "Allocate 50% of income to needs, 30% to wants, and 20% to savings and debt repayment.", Difficulty: LevelBeginner},
		{Title: "Track Your Expenses", Content: "Monitor where your money goes for at least one month to identify spending patterns.", Difficulty: LevelBeginner},
		{Title: "Zero-Based Budgeting", Content: "Give every rand a purpose so your income minus expenses equals zero.", Difficulty: LevelIntermediate},
	},
	CategorySaving: {
		{Title: "Pay Yourself First", Content: "Set up a debit order to savings on payday, before you have a chance to spend the money.", Difficulty: LevelBeginner},
		{Title: "Emergency Fund Goal", Content: "Aim to save 3-6 months of living expenses for unexpected situations.", Difficulty: LevelBeginner},
		{Title: "Tax-Free Savings Accounts", Content: "Use a TFSA so interest and growth on up to R36,000 a year is never taxed.", Difficulty: LevelIntermediate},
	},
	CategoryInvesting: {
		{Title: "Start Early with Compound Interest", Content: "Time is your biggest ally in investing. Start as early as possible to benefit from compound growth.", Difficulty: LevelBeginner},
		{Title: "Diversification is Key", Content: "Don't put all your eggs in one basket. Spread investments across different asset classes.", Difficulty: LevelIntermediate},
		{Title: "Rand-Cost Averaging", Content: "Invest a fixed amount every month regardless of market conditions to reduce timing risk.", Difficulty: LevelIntermediate},
	},
	CategoryDebt: {
		{Title: "Pay More Than Minimum", Content: "Always pay more than the minimum on credit cards to reduce interest charges.", Difficulty: LevelBeginner},
		{Title: "Debt Avalanche Method", Content: "Pay off the debt with the highest interest rate first to minimise total interest paid.", Difficulty: LevelIntermediate},
		{Title: "Debt Snowball Method", Content: "Pay off the smallest debts first for quick wins and momentum.", Difficulty: LevelBeginner},
	},
	CategoryInterest: {
		{Title: "Know Your Rate", Content: "Compare the annual rate, not the monthly instalment, when choosing a loan or savings product.", Difficulty: LevelBeginner},
		{Title: "Compounding Frequency Matters", Content: "Monthly compounding grows savings faster than annual compounding at the same rate.", Difficulty: LevelIntermediate},
	},
}

// tipCategories fixes the iteration order over tipsByCategory
var tipCategories = []string{CategoryBudgeting, CategorySaving, CategoryInvesting, CategoryDebt, CategoryInterest}

var fallbackDailyTip = Tip{
	Title:      "Daily Financial Wisdom",
	Content:    "The best time to start investing was 20 years ago. The second best time is now.",
	Difficulty: LevelBeginner,
	Category:   "general",
	Daily:      true,
}

func init() {
	for category, tips := range tipsByCategory {
		for i := range tips {
			tips[i].Category = category
		}
	}
}

// TipsFor returns a copy of every tip in category
func TipsFor(category string) []Tip {
	return slices.Clone(tipsByCategory[category])
}

func matchesLevel(difficulty, level string) bool {
	return level == LevelAll || difficulty == level
}

// NormalizeLevel lowercases level and falls back to beginner for unknown values
func NormalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll:
		return level
	default:
		return LevelBeginner
	}
}

// DailyTip picks the tip of the day for level. The choice depends only on the
// calendar date so every visitor sees the same tip on the same day.
func DailyTip(level string, day time.Time) Tip {
	var pool []Tip
	for _, category := range tipCategories {
		for _, tip := range tipsByCategory[category] {
			if matchesLevel(tip.Difficulty, level) {
				pool = append(pool, tip)
			}
		}
	}
	if len(pool) == 0 {
		return fallbackDailyTip
	}

	y, m, d := day.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	tip := pool[int(days%int64(len(pool)))]
	tip.Daily = true
	return tip
}

// RecommendForWeak returns the first two tips of every weak quiz category
func RecommendForWeak(categories []string) []Tip {
	var out []Tip
	for _, category := range categories {
		tips := tipsByCategory[category]
		if len(tips) > 2 {
			tips = tips[:2]
		}
		out = append(out, tips...)
	}
	return out
}

// PathStep is one stage of a learning path
type PathStep struct {
	Step          int    `json:"step"`
	Topic         string `json:"topic"`
	EstimatedTime string `json:"estimated_time"`
}

var learningPaths = map[string][]PathStep{
	LevelBeginner: {
		{1, "Basic Budgeting", "1 week"},
		{2, "Emergency Fund Building", "2 weeks"},
		{3, "Debt Management", "2 weeks"},
		{4, "Introduction to Investing", "3 weeks"},
		{5, "Retirement Planning Basics", "2 weeks"},
	},
	LevelIntermediate: {
		{1, "Advanced Budgeting Strategies", "1 week"},
		{2, "Investment Diversification", "2 weeks"},
		{3, "Tax Optimisation", "2 weeks"},
		{4, "Property Investing", "3 weeks"},
		{5, "Advanced Retirement Strategies", "2 weeks"},
	},
	LevelAdvanced: {
		{1, "Portfolio Management", "2 weeks"},
		{2, "Alternative Investments", "3 weeks"},
		{3, "Estate Planning", "2 weeks"},
		{4, "Business Finance", "3 weeks"},
		{5, "Advanced Tax Strategies", "2 weeks"},
	},
}

// LearningPath returns the path for level, defaulting to the beginner path
func LearningPath(level string) []PathStep {
	if path, ok := learningPaths[level]; ok {
		return slices.Clone(path)
	}
	return slices.Clone(learningPaths[LevelBeginner])
}

// NextStep is a suggested action on the tips page
type NextStep struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// NextSteps suggests concrete actions for the chosen interests
func NextSteps(level string, interests []string) []NextStep {
	var steps []NextStep
	beginner := level == LevelBeginner

	if slices.Contains(interests, CategoryBudgeting) {
		if beginner {
			steps = append(steps, NextStep{"Create your first budget", "Use the 50/30/20 rule to allocate your income", "high"})
		} else {
			steps = append(steps, NextStep{"Optimise your budget", "Review and adjust your budget categories", "medium"})
		}
	}
	if slices.Contains(interests, CategorySaving) {
		steps = append(steps, NextStep{"Set up automatic savings", "Add a debit order to your savings account on payday", "high"})
	}
	if slices.Contains(interests, CategoryInvesting) {
		if beginner {
			steps = append(steps, NextStep{"Open an investment account", "Consider a low-cost platform for index fund investing", "medium"})
		} else {
			steps = append(steps, NextStep{"Review your portfolio allocation", "Make sure your investments match your risk tolerance", "medium"})
		}
	}
	return steps
}

// Preferences drive the personalised tips page
type Preferences struct {
	Level     string
	Interests []string
	DailyTip  bool
}

// DefaultInterests are used when a visitor picks none
var DefaultInterests = []string{CategoryBudgeting, CategorySaving}

// Guidance is everything the tips page shows for one set of preferences
type Guidance struct {
	Tips         []Tip      `json:"personalized_tips"`
	LearningPath []PathStep `json:"learning_path"`
	Resources    []Resource `json:"recommended_resources"`
	NextSteps    []NextStep `json:"next_steps"`
}

// Personalize builds tips for prefs. At most two tips are taken from each
// interest; the daily tip, when requested, comes first.
func Personalize(prefs Preferences, now time.Time) Guidance {
	level := NormalizeLevel(prefs.Level)
	interests := prefs.Interests
	if len(interests) == 0 {
		interests = DefaultInterests
	}

	var tips []Tip
	if prefs.DailyTip {
		tips = append(tips, DailyTip(level, now))
	}
	for _, interest := range interests {
		var picked int
		for _, tip := range tipsByCategory[interest] {
			if picked == 2 {
				break
			}
			if matchesLevel(tip.Difficulty, level) {
				tips = append(tips, tip)
				picked++
			}
		}
	}

	return Guidance{
		Tips:         tips,
		LearningPath: LearningPath(level),
		Resources:    RecommendedResources(interests),
		NextSteps:    NextSteps(level, interests),
	}
}
