package learning

import (
	"math"
	"time"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// PassPercent is the minimum quiz score, in percent, that counts as a pass
const PassPercent = 80

// QuizOutcome is the graded result of one quiz attempt
type QuizOutcome struct {
	ChapterID    string               `json:"chapterId"`
	Score        int                  `json:"score"`
	MaxScore     int                  `json:"maxScore"`
	Percent      int                  `json:"percent"`
	Passed       bool                 `json:"passed"`
	CompletedAt  time.Time            `json:"completedAt"`
	WrongAnswers []domain.WrongAnswer `json:"wrongAnswers,omitempty"`
}

// GradeQuiz scores answers keyed by question id. A question without an
// answer counts as wrong.
func GradeQuiz(chapterID string, questions []domain.QuizQuestion, answers map[string]domain.Answer, now time.Time) QuizOutcome {
	out := QuizOutcome{
		ChapterID:   chapterID,
		MaxScore:    len(questions),
		CompletedAt: now,
	}

	for _, q := range questions {
		given := answers[q.ID]
		if Equivalent(q.Correct, given) {
			out.Score++
			continue
		}
		out.WrongAnswers = append(out.WrongAnswers, domain.WrongAnswer{
			ID:            "wrong-" + q.ID,
			ChapterID:     chapterID,
			QuestionID:    q.ID,
			UserAnswer:    append([]string{}, given.Values...),
			CorrectAnswer: append([]string{}, q.Correct.Values...),
			Question:      q.Question,
			Explanation:   q.Explanation,
			Sources:       q.Sources,
			Timestamp:     now,
		})
	}

	out.Percent = ProgressPercent(out.Score, out.MaxScore)
	out.Passed = out.MaxScore > 0 && out.Score*100 >= out.MaxScore*PassPercent
	return out
}

// RecordQuiz stores the outcome as the chapter's latest score and appends
// its wrong answers to the review list
func RecordQuiz(state *domain.ProgressState, outcome QuizOutcome) {
	state.EnsureMaps()

	wrongIDs := make([]string, 0, len(outcome.WrongAnswers))
	for _, w := range outcome.WrongAnswers {
		wrongIDs = append(wrongIDs, w.QuestionID)
	}
	state.QuizScores[outcome.ChapterID] = domain.QuizScore{
		Score:        outcome.Score,
		MaxScore:     outcome.MaxScore,
		CompletedAt:  outcome.CompletedAt,
		WrongAnswers: wrongIDs,
	}
	state.WrongAnswers = append(state.WrongAnswers, outcome.WrongAnswers...)
}

// ClearWrongAnswers empties the review list
func ClearWrongAnswers(state *domain.ProgressState) {
	state.WrongAnswers = nil
}

// ProgressPercent returns completed/total as a rounded percentage, or 0 when
// total is 0
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
