package quiz

import "fmt"

// Option markers used by the review view
const (
	MarkCorrect           = "correct"
	MarkIncorrectSelected = "incorrect-selected"
)

// ReviewOption is one option of a reviewed question
type ReviewOption struct {
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Correct  bool   `json:"correct"`
	Mark     string `json:"mark,omitempty"` // MarkCorrect, MarkIncorrectSelected or empty
}

// ReviewItem is the read-only projection of one question after submission
type ReviewItem struct {
	Index       int            `json:"index"`
	Prompt      string         `json:"prompt"`
	Category    string         `json:"category"`
	Explanation string         `json:"explanation"`
	Answer      string         `json:"answer,omitempty"`
	Answered    bool           `json:"answered"`
	IsCorrect   bool           `json:"is_correct"`
	Options     []ReviewOption `json:"options"`
}

// Review projects the bank and answers into per-question review items. It is
// only available once the session is submitted.
func (s *Session) Review() ([]ReviewItem, bool) {
	if !s.submitted {
		return nil, false
	}

	items := make([]ReviewItem, 0, s.bank.Len())
	for i, q := range s.bank.questions {
		answer, answered := s.answers[i]
		item := ReviewItem{
			Index:       i,
			Prompt:      q.Prompt,
			Category:    q.Category,
			Explanation: q.Explanation,
			Answer:      answer,
			Answered:    answered,
			IsCorrect:   answered && q.IsCorrect(answer),
			Options:     make([]ReviewOption, len(q.Options)),
		}
		for j, option := range q.Options {
			ro := ReviewOption{
				Text:     option,
				Selected: answered && option == answer,
				Correct:  q.IsCorrect(option),
			}
			switch {
			case ro.Correct:
				ro.Mark = MarkCorrect
			case ro.Selected:
				ro.Mark = MarkIncorrectSelected
			}
			item.Options[j] = ro
		}
		items = append(items, item)
	}

	return items, true
}

// CategoryResult summarises performance within one question category
type CategoryResult struct {
	Category string
	Correct  int
	Total    int
}

// Missed returns how many questions in the category were not answered correctly
func (c CategoryResult) Missed() int {
	return c.Total - c.Correct
}

// Weak reports whether accuracy in the category is below 70%
func (c CategoryResult) Weak() bool {
	return c.Total > 0 && !atLeast(c.Correct, c.Total, 70)
}

// Result is the scored outcome of a submitted session
type Result struct {
	Correct    int
	Total      int
	Score      float64
	XP         int
	Grade      string
	Overall    string
	Categories []CategoryResult
}

// Specific returns one line per category with misses, in bank order
func (r Result) Specific() []string {
	var lines []string
	for _, c := range r.Categories {
		if c.Missed() > 0 {
			lines = append(lines, fmt.Sprintf("Review %s concepts - missed %d question(s)", c.Category, c.Missed()))
		}
	}
	return lines
}

// WeakCategories returns categories with accuracy below 70%
func (r Result) WeakCategories() []string {
	var weak []string
	for _, c := range r.Categories {
		if c.Weak() {
			weak = append(weak, c.Category)
		}
	}
	return weak
}

// Result returns the scored outcome; ok is false before submission
func (s *Session) Result() (Result, bool) {
	if !s.submitted {
		return Result{}, false
	}

	total := s.bank.Len()
	byCategory := make(map[string]*CategoryResult)
	var order []string
	for i, q := range s.bank.questions {
		if q.Category == "" {
			continue
		}
		cr, ok := byCategory[q.Category]
		if !ok {
			cr = &CategoryResult{Category: q.Category}
			byCategory[q.Category] = cr
			order = append(order, q.Category)
		}
		cr.Total++
		if answer, answered := s.answers[i]; answered && q.IsCorrect(answer) {
			cr.Correct++
		}
	}

	categories := make([]CategoryResult, 0, len(order))
	for _, c := range order {
		categories = append(categories, *byCategory[c])
	}

	return Result{
		Correct:    s.correct,
		Total:      total,
		Score:      s.score,
		XP:         s.xp,
		Grade:      Grade(s.correct, total),
		Overall:    OverallFeedback(s.correct, total),
		Categories: categories,
	}, true
}

// Grade converts a result to a letter grade
func Grade(correct, total int) string {
	switch {
	case atLeast(correct, total, 90):
		return "A"
	case atLeast(correct, total, 80):
		return "B"
	case atLeast(correct, total, 70):
		return "C"
	case atLeast(correct, total, 60):
		return "D"
	default:
		return "F"
	}
}

// OverallFeedback returns a one-line message for the learner's result
func OverallFeedback(correct, total int) string {
	switch {
	case atLeast(correct, total, 90):
		return "Excellent! You have a strong understanding of financial concepts."
	case atLeast(correct, total, 70):
		return "Good job! You have a solid foundation but there's room for improvement."
	case atLeast(correct, total, 50):
		return "You're on the right track, but consider reviewing some key concepts."
	default:
		return "Don't worry - everyone starts somewhere! Focus on learning the basics."
	}
}
