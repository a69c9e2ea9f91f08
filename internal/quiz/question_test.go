package quiz

import (
	"errors"
	"testing"
)

func TestNewBankValidation(t *testing.T) {
	valid := Question{Prompt: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectOption: "a"}

	tests := []struct {
		name      string
		questions []Question
		wantErr   error
	}{
		{name: "empty bank", questions: nil, wantErr: ErrEmptyBank},
		{name: "valid", questions: []Question{valid}},
		{
			name:      "empty prompt",
			questions: []Question{{Prompt: "  ", Options: valid.Options, CorrectOption: "a"}},
			wantErr:   ErrEmptyPrompt,
		},
		{
			name:      "three options",
			questions: []Question{{Prompt: "Q?", Options: []string{"a", "b", "c"}, CorrectOption: "a"}},
			wantErr:   ErrOptionCount,
		},
		{
			name:      "duplicate options",
			questions: []Question{{Prompt: "Q?", Options: []string{"a", "a", "c", "d"}, CorrectOption: "a"}},
			wantErr:   ErrDuplicate,
		},
		{
			name:      "correct option missing",
			questions: []Question{{Prompt: "Q?", Options: valid.Options, CorrectOption: "z"}},
			wantErr:   ErrMissingAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.questions)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewBank() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBank() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBankIsImmutable(t *testing.T) {
	options := []string{"a", "b", "c", "d"}
	bank, err := NewBank([]Question{{Prompt: "Q?", Options: options, CorrectOption: "a"}})
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}

	options[0] = "changed"
	q, _ := bank.Question(0)
	q.Options[1] = "also changed"

	again, _ := bank.Question(0)
	if again.Options[0] != "a" || again.Options[1] != "b" {
		t.Errorf("bank options mutated: %v", again.Options)
	}
}

func TestMustBankPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBank() should panic on an empty bank")
		}
	}()
	MustBank(nil)
}
