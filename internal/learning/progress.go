package learning

import (
	"slices"
	"time"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// UpdateChapterProgress sets a chapter's progress and completion flag
func UpdateChapterProgress(state *domain.ProgressState, chapterID string, percent int, completed bool, now time.Time) {
	state.EnsureMaps()
	cp := state.Chapters[chapterID]
	cp.Progress = min(max(percent, 0), 100)
	cp.Completed = completed
	cp.LastAccessed = now
	state.Chapters[chapterID] = cp
}

// CompleteSection marks a reading section done and recomputes the chapter's
// progress from sections and mini exercises
func CompleteSection(state *domain.ProgressState, ch domain.Chapter, sectionID string, now time.Time) {
	state.EnsureMaps()
	cp := state.Chapters[ch.ID]
	if !slices.Contains(cp.SectionsCompleted, sectionID) {
		cp.SectionsCompleted = append(cp.SectionsCompleted, sectionID)
	}
	state.Chapters[ch.ID] = recompute(cp, ch, now)
}

// CompleteExercise records a mini exercise attempt. Only a correct answer
// marks it done; the return value reports whether it was correct.
func CompleteExercise(state *domain.ProgressState, ch domain.Chapter, ex domain.MiniExercise, answer domain.Answer, now time.Time) bool {
	if !CheckExercise(ex, answer) {
		return false
	}
	state.EnsureMaps()
	cp := state.Chapters[ch.ID]
	if !slices.Contains(cp.MiniExercisesCompleted, ex.ID) {
		cp.MiniExercisesCompleted = append(cp.MiniExercisesCompleted, ex.ID)
	}
	state.Chapters[ch.ID] = recompute(cp, ch, now)
	return true
}

func recompute(cp domain.ChapterProgress, ch domain.Chapter, now time.Time) domain.ChapterProgress {
	total := len(ch.Sections) + len(ch.MiniExercises)
	done := len(cp.SectionsCompleted) + len(cp.MiniExercisesCompleted)
	cp.Progress = min(ProgressPercent(done, total), 100)
	cp.Completed = total > 0 && done >= total
	cp.LastAccessed = now
	return cp
}

// CourseProgress returns the share of all chapters completed, in percent
func CourseProgress(state *domain.ProgressState, course *domain.Course) int {
	done := 0
	for _, ch := range course.Chapters {
		if state.Chapters[ch.ID].Completed {
			done++
		}
	}
	return ProgressPercent(done, len(course.Chapters))
}
