package learning

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// Certificate thresholds, in percent
const (
	RequiredCompletionPercent = 80
	RequiredAverageScore      = 80
)

// ErrNotEligible is returned when a certificate is requested too early
var ErrNotEligible = errors.New("not eligible for a certificate")

// EligibilityReport summarizes where a learner stands against the
// certificate thresholds
type EligibilityReport struct {
	RequiredCompleted int  `json:"requiredCompleted"`
	RequiredTotal     int  `json:"requiredTotal"`
	CompletionPercent int  `json:"completionPercent"`
	AverageScore      int  `json:"averageScore"`
	QuizzesTaken      int  `json:"quizzesTaken"`
	Eligible          bool `json:"eligible"`
}

// Eligibility checks required-chapter completion and the average quiz score.
// A course with no required chapters never qualifies.
func Eligibility(state *domain.ProgressState, course *domain.Course) EligibilityReport {
	var r EligibilityReport
	for _, ch := range course.Chapters {
		if !ch.Required {
			continue
		}
		r.RequiredTotal++
		if state.Chapters[ch.ID].Completed {
			r.RequiredCompleted++
		}
	}
	r.CompletionPercent = ProgressPercent(r.RequiredCompleted, r.RequiredTotal)

	var sum float64
	for _, s := range state.QuizScores {
		if s.MaxScore <= 0 {
			continue
		}
		sum += float64(s.Score) / float64(s.MaxScore) * 100
		r.QuizzesTaken++
	}
	if r.QuizzesTaken > 0 {
		r.AverageScore = int(math.Round(sum / float64(r.QuizzesTaken)))
	}

	r.Eligible = r.RequiredTotal > 0 &&
		r.RequiredCompleted*100 >= r.RequiredTotal*RequiredCompletionPercent &&
		r.AverageScore >= RequiredAverageScore
	return r
}

// IssueCertificate appends a new certificate to the state when the learner
// is eligible
func IssueCertificate(state *domain.ProgressState, course *domain.Course, now time.Time) (domain.Certificate, error) {
	report := Eligibility(state, course)
	if !report.Eligible {
		return domain.Certificate{}, fmt.Errorf("%w: %d%% of required chapters, average score %d",
			ErrNotEligible, report.CompletionPercent, report.AverageScore)
	}

	id := uuid.New()
	cert := domain.Certificate{
		ID:                id.String(),
		UserID:            state.UserID,
		IssuedAt:          now,
		ChapterCompletion: report.RequiredCompleted,
		AverageScore:      report.AverageScore,
		CertificateNumber: CertificateNumber(now, id),
	}
	state.Certificates = append(state.Certificates, cert)
	return cert, nil
}

// CertificateNumber formats OJT-YYYYMMDD-XXXXXXXX from the issue date and
// the first eight hex digits of the certificate id
func CertificateNumber(issued time.Time, id uuid.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return fmt.Sprintf("OJT-%s-%s", issued.UTC().Format("20060102"), suffix)
}
