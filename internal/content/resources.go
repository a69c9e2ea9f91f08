package content

import (
	"slices"
)

// Resource is a book, website, podcast or app recommendation
type Resource struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	URL         string `json:"url,omitempty"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

var resources = []Resource{
	{Type: "book", Title: "Rich Dad Poor Dad", Author: "Robert Kiyosaki", Category: "general", Difficulty: LevelBeginner, Description: "Fundamental concepts about money and investing"},
	{Type: "book", Title: "The Intelligent Investor", Author: "Benjamin Graham", Category: CategoryInvesting, Difficulty: LevelAdvanced, Description: "Classic guide to value investing"},
	{Type: "website", Title: "Khan Academy Personal Finance", URL: "https://www.khanacademy.org/economics-finance-domain/core-finance", Category: "general", Difficulty: LevelBeginner, Description: "Free online courses on personal finance"},
	{Type: "podcast", Title: "The Dave Ramsey Show", Category: CategoryDebt, Difficulty: LevelBeginner, Description: "Daily advice on money and debt management"},
	{Type: "app", Title: "22seven", URL: "https://www.22seven.com/", Category: CategoryBudgeting, Difficulty: LevelBeginner, Description: "Free South African budgeting and expense tracking app"},
	{Type: "book", Title: "You Need A Budget", Author: "Jesse Mecham", Category: CategoryBudgeting, Difficulty: LevelBeginner, Description: "Practical budgeting methodology"},
	{Type: "book", Title: "The Bogleheads' Guide to Investing", Author: "Taylor Larimore", Category: CategoryInvesting, Difficulty: LevelIntermediate, Description: "Simple, effective investment strategies"},
	{Type: "website", Title: "Investopedia", URL: "https://www.investopedia.com/", Category: CategoryInvesting, Difficulty: LevelBeginner, Description: "Investment education and glossary"},
	{Type: "book", Title: "The Automatic Millionaire", Author: "David Bach", Category: CategorySaving, Difficulty: LevelBeginner, Description: "Automated saving strategies"},
	{Type: "book", Title: "The Total Money Makeover", Author: "Dave Ramsey", Category: CategoryDebt, Difficulty: LevelBeginner, Description: "Step-by-step debt elimination plan"},
	{Type: "website", Title: "JSE Investor Education", URL: "https://www.jse.co.za/", Category: CategoryInvesting, Difficulty: LevelIntermediate, Description: "Courses and guides from the Johannesburg Stock Exchange"},
}

// ResourceFilter narrows the resource list. Empty fields and "all" match
// everything.
type ResourceFilter struct {
	Type       string
	Category   string
	Difficulty string
}

// ResourceList is the filtered resource list plus the available filter values
type ResourceList struct {
	Resources  []Resource `json:"resources"`
	TotalCount int        `json:"total_count"`
	Categories []string   `json:"categories_available"`
	Types      []string   `json:"types_available"`
}

func matchesFilter(value, want string) bool {
	return want == "" || want == LevelAll || value == want
}

// FilterResources applies f to the resource catalogue
func FilterResources(f ResourceFilter) ResourceList {
	list := ResourceList{Resources: []Resource{}}
	for _, r := range resources {
		if matchesFilter(r.Type, f.Type) && matchesFilter(r.Category, f.Category) && matchesFilter(r.Difficulty, f.Difficulty) {
			list.Resources = append(list.Resources, r)
		}
		if !slices.Contains(list.Categories, r.Category) {
			list.Categories = append(list.Categories, r.Category)
		}
		if !slices.Contains(list.Types, r.Type) {
			list.Types = append(list.Types, r.Type)
		}
	}
	list.TotalCount = len(list.Resources)
	slices.Sort(list.Categories)
	slices.Sort(list.Types)
	return list
}

// RecommendedResources returns every resource in one of the given categories,
// in interest order
func RecommendedResources(interests []string) []Resource {
	var out []Resource
	for _, interest := range interests {
		for _, r := range resources {
			if r.Category == interest {
				out = append(out, r)
			}
		}
	}
	return out
}
