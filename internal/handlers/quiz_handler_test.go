package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"financecoach/internal/service"
)

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) service.QuizView {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var view service.QuizView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return view
}

func TestQuizFlowJSON(t *testing.T) {
	env := newTestEnv(t, allFeatures)
	h := NewQuizHandler(env.quiz, nil, env.metrics, env.renderer)

	post := func(handler http.HandlerFunc, form url.Values) service.QuizView {
		req := env.request(t, http.MethodPost, "/literacy/quiz", form)
		req.Header.Set("Accept", "application/json")
		return decodeView(t, env.serve(handler, req))
	}

	view := post(h.Start, nil)
	if view.State != "in_progress" {
		t.Fatalf("new quiz should not be submitted: %+v", view)
	}
	if view.Index != 0 || !view.IsFirst || view.Question == nil {
		t.Fatalf("new quiz = %+v", view)
	}

	first, _ := env.quiz.Bank().Question(0)
	view = post(h.Answer, url.Values{"index": {"0"}, "option": {first.CorrectOption}})
	if view.Answered != 1 || view.Question.Selected != first.CorrectOption {
		t.Errorf("after answer: answered = %d selected = %q", view.Answered, view.Question.Selected)
	}

	view = post(h.Next, nil)
	if view.Index != 1 || view.IsFirst {
		t.Errorf("after next: index = %d", view.Index)
	}
	view = post(h.Prev, nil)
	if view.Index != 0 {
		t.Errorf("after prev: index = %d", view.Index)
	}

	view = post(h.Submit, nil)
	if !view.Submitted || view.Question != nil {
		t.Fatalf("after submit = %+v", view)
	}
	if view.Score == nil || *view.Score <= 0 {
		t.Errorf("score = %v, want one correct answer counted", view.Score)
	}

	// a second submit shows the same result without counting again
	again := post(h.Submit, nil)
	if again.Score == nil || *again.Score != *view.Score {
		t.Errorf("resubmit score = %v, want %v", again.Score, *view.Score)
	}
	scored, _ := env.quiz.View(testVisitor)
	want := `quiz_submissions_total{grade="` + scored.Result.Grade + `"} 1`
	if body := scrape(t, env.metrics); !strings.Contains(body, want) {
		t.Errorf("metrics missing %s", want)
	}

	state := env.serve(h.State, env.request(t, http.MethodGet, "/literacy/quiz/state", nil))
	if got := decodeView(t, state); !got.Submitted {
		t.Error("state should report the submitted quiz")
	}
}

func TestQuizStateShowsEmptySubmission(t *testing.T) {
	env := newTestEnv(t, allFeatures)
	h := NewQuizHandler(env.quiz, nil, env.metrics, env.renderer)

	state := func() map[string]any {
		t.Helper()
		rec := env.serve(h.State, env.request(t, http.MethodGet, "/literacy/quiz/state", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		return got
	}

	before := state()
	for _, key := range []string{"score", "xp", "review"} {
		if _, ok := before[key]; ok {
			t.Errorf("unsubmitted state has %q", key)
		}
	}

	req := env.request(t, http.MethodPost, "/literacy/quiz/submit", nil)
	req.Header.Set("Accept", "application/json")
	decodeView(t, env.serve(h.Submit, req))

	after := state()
	if after["score"] != 0.0 {
		t.Errorf("score = %v, want 0", after["score"])
	}
	if after["xp"] != 0.0 {
		t.Errorf("xp = %v, want 0", after["xp"])
	}
	review, ok := after["review"].([]any)
	if !ok || len(review) != env.quiz.Bank().Len() {
		t.Fatalf("review = %v, want %d items", after["review"], env.quiz.Bank().Len())
	}

	first := review[0].(map[string]any)
	if first["answered"] != false {
		t.Errorf("first item answered = %v, want false", first["answered"])
	}
	marks := map[string]int{}
	for _, o := range first["options"].([]any) {
		if mark, ok := o.(map[string]any)["mark"].(string); ok {
			marks[mark]++
		}
	}
	if marks["correct"] != 1 || marks["incorrect-selected"] != 0 {
		t.Errorf("marks = %v, want one correct and nothing selected", marks)
	}
}

func TestQuizAnswerRejectsBadIndex(t *testing.T) {
	env := newTestEnv(t, allFeatures)
	h := NewQuizHandler(env.quiz, nil, env.metrics, env.renderer)

	rec := env.serve(h.Answer, env.request(t, http.MethodPost, "/literacy/quiz/answer", url.Values{"index": {"first"}, "option": {"x"}}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestQuizFormPostsRedirect(t *testing.T) {
	env := newTestEnv(t, allFeatures)
	h := NewQuizHandler(env.quiz, nil, env.metrics, env.renderer)

	rec := env.serve(h.Next, env.request(t, http.MethodPost, "/literacy/quiz/next", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/literacy/quiz" {
		t.Errorf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestQuizPageRendersQuestionThenResults(t *testing.T) {
	env := newTestEnv(t, allFeatures)
	h := NewQuizHandler(env.quiz, nil, env.metrics, env.renderer)

	rec := env.serve(h.Show, env.request(t, http.MethodGet, "/literacy/quiz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Question 1 of") {
		t.Errorf("question page missing progress:\n%s", body)
	}
	if strings.Contains(body, "Review") {
		t.Error("review should not show before submit")
	}

	// logged-in submit records the attempt and shows progress
	req := env.request(t, http.MethodPost, "/literacy/quiz/submit", nil)
	env.login(t, req)
	session, _ := req.Cookie(SessionCookieName)
	env.serve(h.Submit, req)

	req = env.request(t, http.MethodGet, "/literacy/quiz", nil)
	req.AddCookie(session)
	body = env.serve(h.Show, req).Body.String()

	for _, want := range []string{"Grade F", "You answered 0 of", "Review", "Your progress: 1 attempts", "Not answered."} {
		if !strings.Contains(body, want) {
			t.Errorf("results page missing %q", want)
		}
	}
}

func TestQuizEmail(t *testing.T) {
	env := newTestEnv(t, allFeatures)
	h := NewQuizHandler(env.quiz, nil, env.metrics, env.renderer)

	req := env.request(t, http.MethodPost, "/literacy/quiz/email", nil)
	env.login(t, req)
	rec := env.serve(h.Email, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status without email = %d, want 503", rec.Code)
	}
}
