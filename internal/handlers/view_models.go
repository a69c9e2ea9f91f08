package handlers

import (
	"financecoach/internal/backend"
	"financecoach/internal/config"
	"financecoach/internal/content"
	"financecoach/internal/models"
	"financecoach/internal/service"
)

// PageData is embedded by every page's view data
type PageData struct {
	Title     string
	User      *models.User
	CSRFToken string
	Features  config.Features
	Path      string
}

type OAuthProviderView struct {
	Name     string
	Label    string
	URL      string
	CSSClass string
}

type LoginViewData struct {
	PageData
	OAuthProviders []OAuthProviderView
	Error          string
	Email          string
}

type RegisterViewData struct {
	PageData
	OAuthProviders []OAuthProviderView
	Error          string
	Email          string
	Name           string
}

type DashboardViewData struct {
	PageData
	BackendHealthy bool
	BackendStatus  string
	Stats          models.QuizStats
	DailyTip       content.Tip
}

type LiteracyMenuViewData struct {
	PageData
	Categories []string
	Questions  int
}

type CardsViewData struct {
	PageData
	Heading string
	Cards   []content.Card
}

type TipsViewData struct {
	PageData
	Preferences content.Preferences
	Guidance    content.Guidance
	Levels      []string
	Categories  []string
}

type ResourcesViewData struct {
	PageData
	Filter content.ResourceFilter
	List   content.ResourceList
}

type QuizViewData struct {
	PageData
	Quiz            service.QuizView
	Progress        int
	RecommendedTips []content.Tip
	Resources       []content.Resource
	Stats           *models.QuizStats
	EmailEnabled    bool
	Notice          string
}

// FinanceViewData backs the planner, investment, loan and fraud pages.
// Form echoes the submitted values so a failed request keeps the learner's
// input.
type FinanceViewData struct {
	PageData
	Form    map[string]string
	Action  string
	Result  backend.Response
	Error   string
	Brokers []content.BrokerGroup
}

type NewsViewData struct {
	PageData
	Ticker    string
	Sentiment backend.Response
	Prices    backend.Response
	Error     string
}
