package learning

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveRequired() *domain.Course {
	c := &domain.Course{}
	for _, id := range []string{"ch0", "ch1", "ch2", "ch3", "ch4"} {
		c.Chapters = append(c.Chapters, domain.Chapter{ID: id, Required: true})
	}
	c.Chapters = append(c.Chapters, domain.Chapter{ID: "extra"})
	return c
}

func TestEligibility(t *testing.T) {
	course := fiveRequired()
	state := domain.NewProgressState("user-1")

	r := Eligibility(state, course)
	assert.Equal(t, 5, r.RequiredTotal)
	assert.Equal(t, 0, r.RequiredCompleted)
	assert.False(t, r.Eligible)

	for _, id := range []string{"ch0", "ch1", "ch2", "ch3"} {
		UpdateChapterProgress(state, id, 100, true, testNow)
	}
	UpdateChapterProgress(state, "extra", 100, true, testNow)
	state.QuizScores["ch0"] = domain.QuizScore{Score: 4, MaxScore: 5}
	state.QuizScores["ch1"] = domain.QuizScore{Score: 2, MaxScore: 2}

	r = Eligibility(state, course)
	assert.Equal(t, 4, r.RequiredCompleted, "optional chapters do not count")
	assert.Equal(t, 80, r.CompletionPercent)
	assert.Equal(t, 90, r.AverageScore)
	assert.True(t, r.Eligible)

	state.QuizScores["ch2"] = domain.QuizScore{Score: 1, MaxScore: 2}
	r = Eligibility(state, course)
	assert.Equal(t, 77, r.AverageScore)
	assert.False(t, r.Eligible, "average below 80")
}

func TestEligibility_NoRequiredChapters(t *testing.T) {
	course := &domain.Course{Chapters: []domain.Chapter{{ID: "a"}}}
	state := domain.NewProgressState("user-1")
	state.QuizScores["a"] = domain.QuizScore{Score: 1, MaxScore: 1}

	assert.False(t, Eligibility(state, course).Eligible)
}

func TestIssueCertificate(t *testing.T) {
	course := fiveRequired()
	state := domain.NewProgressState("user-1")

	_, err := IssueCertificate(state, course, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEligible))
	assert.Empty(t, state.Certificates)

	for _, ch := range course.Chapters {
		UpdateChapterProgress(state, ch.ID, 100, true, testNow)
	}
	state.QuizScores["ch0"] = domain.QuizScore{Score: 5, MaxScore: 5}

	cert, err := IssueCertificate(state, course, testNow)
	require.NoError(t, err)

	assert.Equal(t, "user-1", cert.UserID)
	assert.Equal(t, 5, cert.ChapterCompletion)
	assert.Equal(t, 100, cert.AverageScore)
	assert.Regexp(t, regexp.MustCompile(`^OJT-20250314-[0-9A-F]{8}$`), cert.CertificateNumber)
	_, err = uuid.Parse(cert.ID)
	assert.NoError(t, err)
	assert.Len(t, state.Certificates, 1)
}

func TestCertificateNumber(t *testing.T) {
	id := uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	assert.Equal(t, "OJT-20250314-1B4E28BA", CertificateNumber(testNow, id))
}
