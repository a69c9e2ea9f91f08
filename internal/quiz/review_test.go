package quiz

import (
	"reflect"
	"testing"
)

func TestReviewMarks(t *testing.T) {
	s := NewSession(testBank(t, 3))
	s.SelectAnswer(0, "B")
	s.SelectAnswer(1, "D")
	s.Submit()

	items, ok := s.Review()
	if !ok {
		t.Fatal("Review() should be available after submit")
	}
	if len(items) != 3 {
		t.Fatalf("len(Review()) = %d, want 3", len(items))
	}

	marks := func(item ReviewItem) []string {
		out := make([]string, len(item.Options))
		for i, o := range item.Options {
			out[i] = o.Mark
		}
		return out
	}

	tests := []struct {
		name      string
		item      ReviewItem
		want      []string
		isCorrect bool
		answered  bool
	}{
		{
			name:      "correct selection",
			item:      items[0],
			want:      []string{"", MarkCorrect, "", ""},
			isCorrect: true,
			answered:  true,
		},
		{
			name:     "wrong selection",
			item:     items[1],
			want:     []string{"", MarkCorrect, "", MarkIncorrectSelected},
			answered: true,
		},
		{
			name: "unanswered",
			item: items[2],
			want: []string{"", MarkCorrect, "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marks(tt.item); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("marks = %v, want %v", got, tt.want)
			}
			if tt.item.IsCorrect != tt.isCorrect {
				t.Errorf("IsCorrect = %v, want %v", tt.item.IsCorrect, tt.isCorrect)
			}
			if tt.item.Answered != tt.answered {
				t.Errorf("Answered = %v, want %v", tt.item.Answered, tt.answered)
			}
		})
	}
}

func TestResultCategories(t *testing.T) {
	// even indexes are "saving", odd are "investing"
	s := NewSession(testBank(t, 6))
	s.SelectAnswer(0, "B")
	s.SelectAnswer(2, "B")
	s.SelectAnswer(4, "B")
	s.SelectAnswer(1, "B")
	s.SelectAnswer(3, "A")
	s.Submit()

	result, ok := s.Result()
	if !ok {
		t.Fatal("Result() should be available after submit")
	}

	want := []CategoryResult{
		{Category: "saving", Correct: 3, Total: 3},
		{Category: "investing", Correct: 1, Total: 3},
	}
	if !reflect.DeepEqual(result.Categories, want) {
		t.Errorf("Categories = %+v, want %+v", result.Categories, want)
	}
	if got := result.WeakCategories(); !reflect.DeepEqual(got, []string{"investing"}) {
		t.Errorf("WeakCategories() = %v, want [investing]", got)
	}
	wantSpecific := []string{"Review investing concepts - missed 2 question(s)"}
	if got := result.Specific(); !reflect.DeepEqual(got, wantSpecific) {
		t.Errorf("Specific() = %v, want %v", got, wantSpecific)
	}
}

func TestResultUnavailableBeforeSubmit(t *testing.T) {
	s := NewSession(testBank(t, 2))
	if _, ok := s.Result(); ok {
		t.Error("Result() should not be available before submit")
	}
}

func TestOverallFeedback(t *testing.T) {
	tests := []struct {
		correct int
		want    string
	}{
		{correct: 10, want: "Excellent! You have a strong understanding of financial concepts."},
		{correct: 7, want: "Good job! You have a solid foundation but there's room for improvement."},
		{correct: 5, want: "You're on the right track, but consider reviewing some key concepts."},
		{correct: 2, want: "Don't worry - everyone starts somewhere! Focus on learning the basics."},
	}

	for _, tt := range tests {
		if got := OverallFeedback(tt.correct, 10); got != tt.want {
			t.Errorf("OverallFeedback(%d, 10) = %q, want %q", tt.correct, got, tt.want)
		}
	}
}
