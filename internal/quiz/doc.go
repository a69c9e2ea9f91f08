// Package quiz implements the financial-literacy quiz: a fixed question bank,
// a per-learner session with linear navigation and one answer per question,
// and one-shot scoring with an experience-point reward.
//
// A session has two states. While InProgress the learner may select answers
// and move between questions; Submit scores the session and moves it to
// Submitted, after which every mutating call is ignored and the review view
// becomes available. To take the quiz again, start a new session.
package quiz
