package quiz

// State is the lifecycle state of a session
type State int

const (
	InProgress State = iota
	Submitted
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Session tracks one learner's pass through a bank. It is owned by a single
// caller and is not safe for concurrent use.
//
// Invalid events (out-of-range indexes, unknown options, anything after
// Submit) are ignored rather than reported, so stray UI events cannot corrupt
// the frozen review state.
type Session struct {
	bank      *Bank
	current   int
	answers   map[int]string
	submitted bool

	correct int
	score   float64
	xp      int
}

// NewSession starts a session at the first question with no answers
func NewSession(bank *Bank) *Session {
	return &Session{
		bank:    bank,
		answers: make(map[int]string),
	}
}

// SelectAnswer records option as the answer for question index, replacing any
// earlier choice for that question
func (s *Session) SelectAnswer(index int, option string) {
	if s.submitted {
		return
	}
	q, ok := s.bank.Question(index)
	if !ok || !q.HasOption(option) {
		return
	}
	s.answers[index] = option
}

// Advance moves to the next question unless the last one is displayed
func (s *Session) Advance() {
	if s.submitted {
		return
	}
	if s.current < s.bank.Len()-1 {
		s.current++
	}
}

// Retreat moves to the previous question unless the first one is displayed
func (s *Session) Retreat() {
	if s.submitted {
		return
	}
	if s.current > 0 {
		s.current--
	}
}

// Submit scores the session. Unanswered questions count as wrong. Calling
// Submit again has no effect.
func (s *Session) Submit() {
	if s.submitted {
		return
	}

	correct := 0
	for i, q := range s.bank.questions {
		if answer, ok := s.answers[i]; ok && q.IsCorrect(answer) {
			correct++
		}
	}

	total := s.bank.Len()
	s.correct = correct
	s.score = percentOf(correct, total)
	s.xp = XPFor(correct, total)
	s.submitted = true
}

// Bank returns the question bank the session runs over
func (s *Session) Bank() *Bank {
	return s.bank
}

// State returns the lifecycle state
func (s *Session) State() State {
	if s.submitted {
		return Submitted
	}
	return InProgress
}

// Submitted reports whether the session has been scored
func (s *Session) Submitted() bool {
	return s.submitted
}

// CurrentIndex returns the zero-based index of the displayed question
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the displayed question
func (s *Session) Current() Question {
	q, _ := s.bank.Question(s.current)
	return q
}

// IsFirst reports whether the first question is displayed
func (s *Session) IsFirst() bool {
	return s.current == 0
}

// IsLast reports whether the last question is displayed. The UI swaps its
// "Next" action for "Submit" here.
func (s *Session) IsLast() bool {
	return s.current == s.bank.Len()-1
}

// Len returns the number of questions in the session
func (s *Session) Len() int {
	return s.bank.Len()
}

// Answer returns the learner's selection for question index
func (s *Session) Answer(index int) (string, bool) {
	answer, ok := s.answers[index]
	return answer, ok
}

// AnsweredCount returns how many questions have a selection
func (s *Session) AnsweredCount() int {
	return len(s.answers)
}

// Answers returns a copy of the answer set
func (s *Session) Answers() map[int]string {
	answers := make(map[int]string, len(s.answers))
	for i, a := range s.answers {
		answers[i] = a
	}
	return answers
}

// Score returns the percentage score; ok is false before submission
func (s *Session) Score() (score float64, ok bool) {
	return s.score, s.submitted
}

// XP returns the experience points earned; ok is false before submission
func (s *Session) XP() (xp int, ok bool) {
	return s.xp, s.submitted
}

// CorrectCount returns the number of correct answers; ok is false before
// submission
func (s *Session) CorrectCount() (int, bool) {
	return s.correct, s.submitted
}
