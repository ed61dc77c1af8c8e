// Package learning grades quizzes and tracks a learner's progress through
// the OJT course. Every function works on an explicit ProgressState value;
// persistence belongs to the store package.
package learning

import (
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// Equivalent reports whether actual matches expected. Both sides are reduced
// to sets of trimmed, non-empty choices, so a single answer equals a
// one-element multiple answer and order never matters. An empty answer is
// never equivalent to anything.
func Equivalent(expected, actual domain.Answer) bool {
	want := answerSet(expected)
	got := answerSet(actual)
	if len(want) == 0 || len(got) == 0 {
		return false
	}
	if len(want) != len(got) {
		return false
	}
	for v := range want {
		if _, ok := got[v]; !ok {
			return false
		}
	}
	return true
}

func answerSet(a domain.Answer) map[string]struct{} {
	set := make(map[string]struct{}, len(a.Values))
	if a.Kind == domain.AnswerNone {
		return set
	}
	for _, v := range a.Values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

// CheckExercise grades a single mini exercise attempt
func CheckExercise(ex domain.MiniExercise, answer domain.Answer) bool {
	return Equivalent(ex.Correct, answer)
}
