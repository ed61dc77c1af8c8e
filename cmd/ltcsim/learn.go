package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/learning"
	"github.com/homecare-ojt/ltcsim/internal/store"
)

// withProgress loads the learner's state, runs fn and saves the state when
// fn reports a change
func withProgress(cmd *cobra.Command, fn func(ctx context.Context, state *domain.ProgressState) (bool, error)) error {
	return withStore(cmd, func(ctx context.Context, st store.ProgressStore) error {
		return updateProgress(ctx, st, fn)
	})
}

// withStore opens the configured store for fn
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st store.ProgressStore) error) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	st, err := rt.store(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(ctx, st)
}

func updateProgress(ctx context.Context, st store.ProgressStore, fn func(ctx context.Context, state *domain.ProgressState) (bool, error)) error {
	state, err := st.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(ctx, state)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return st.Save(ctx, state)
}

func loadAnswers(filename string) (map[string]domain.Answer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	answers := map[string]domain.Answer{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return answers, nil
}

func quizCmd() *cobra.Command {
	quiz := &cobra.Command{
		Use:   "quiz",
		Short: "Chapter quizzes",
	}
	grade := &cobra.Command{
		Use:   "grade [course-file] [chapter] [answers-file]",
		Short: "Grade a chapter quiz and record the score",
		Long: `Grades answers against the chapter quiz. The answers file maps
question ids to an answer, or a list of answers for multi-select questions:

  ch0-q1: "인사관리 및 인력변경 보고"
  ch0-q2: ["일정관리 및 라운딩"]`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := config.NewCourseParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			ch, ok := course.Chapter(args[1])
			if !ok {
				return fmt.Errorf("chapter %s not found in %s", args[1], course.Title)
			}
			answers, err := loadAnswers(args[2])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return withProgress(cmd, func(ctx context.Context, state *domain.ProgressState) (bool, error) {
				outcome := learning.GradeQuiz(ch.ID, ch.Quiz, answers, time.Now())
				learning.RecordQuiz(state, outcome)

				verdict := "FAILED"
				if outcome.Passed {
					verdict = "PASSED"
				}
				fmt.Fprintf(out, "%s: %d/%d (%d%%) %s\n", ch.Title, outcome.Score, outcome.MaxScore, outcome.Percent, verdict)
				for _, w := range outcome.WrongAnswers {
					fmt.Fprintf(out, "\n✗ %s\n  your answer: %v\n  correct:     %v\n", w.Question, w.UserAnswer, w.CorrectAnswer)
					if w.Explanation != "" {
						fmt.Fprintf(out, "  %s\n", w.Explanation)
					}
				}
				return true, nil
			})
		},
	}
	quiz.AddCommand(grade)
	return quiz
}

func progressCmd() *cobra.Command {
	progress := &cobra.Command{
		Use:   "progress",
		Short: "Learner progress",
	}

	show := &cobra.Command{
		Use:   "show [course-file]",
		Short: "Show chapter completion, quiz scores and certificate eligibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := config.NewCourseParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return withProgress(cmd, func(ctx context.Context, state *domain.ProgressState) (bool, error) {
				fmt.Fprintf(out, "%s (%s)\n", course.Title, state.UserID)
				for _, ch := range course.Chapters {
					p := state.Chapters[ch.ID]
					mark := " "
					if p.Completed {
						mark = "✓"
					}
					line := fmt.Sprintf("[%s] %-5s %s", mark, ch.ID, ch.Title)
					if s, ok := state.QuizScores[ch.ID]; ok {
						line += fmt.Sprintf("  quiz %d/%d", s.Score, s.MaxScore)
					}
					fmt.Fprintln(out, line)
				}

				r := learning.Eligibility(state, course)
				fmt.Fprintf(out, "\nCourse progress: %d%%\n", learning.CourseProgress(state, course))
				fmt.Fprintf(out, "Required chapters: %d/%d (%d%%)\n", r.RequiredCompleted, r.RequiredTotal, r.CompletionPercent)
				fmt.Fprintf(out, "Average quiz score: %d%% over %d quizzes\n", r.AverageScore, r.QuizzesTaken)
				fmt.Fprintf(out, "Wrong answers to review: %d\n", len(state.WrongAnswers))
				if r.Eligible {
					fmt.Fprintln(out, "Eligible for a certificate")
				}
				return false, nil
			})
		},
	}

	complete := &cobra.Command{
		Use:   "complete [course-file] [chapter]",
		Short: "Mark a chapter as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := config.NewCourseParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			ch, ok := course.Chapter(args[1])
			if !ok {
				return fmt.Errorf("chapter %s not found in %s", args[1], course.Title)
			}
			return withProgress(cmd, func(ctx context.Context, state *domain.ProgressState) (bool, error) {
				learning.UpdateChapterProgress(state, ch.ID, 100, true, time.Now())
				fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", ch.Title)
				return true, nil
			})
		},
	}

	clearWrong := &cobra.Command{
		Use:   "clear-wrong",
		Short: "Empty the wrong-answer review list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProgress(cmd, func(ctx context.Context, state *domain.ProgressState) (bool, error) {
				learning.ClearWrongAnswers(state)
				return true, nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Write progress and settings to a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, _ := cmd.Flags().GetString("output")
			return withStore(cmd, func(ctx context.Context, st store.ProgressStore) error {
				now := time.Now()
				b, err := store.ExportProgress(ctx, st, now)
				if err != nil {
					return err
				}
				if filename == "-" {
					return store.WriteBackup(cmd.OutOrStdout(), b)
				}
				if filename == "" {
					filename = store.BackupFileName(now)
				}
				f, err := os.Create(filename)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", filename, err)
				}
				defer f.Close()
				if err := store.WriteBackup(f, b); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", filename)
				return nil
			})
		},
	}
	export.Flags().StringP("output", "o", "", "Backup file (default: ojt-backup-YYYY-MM-DD.json, - for stdout)")

	restore := &cobra.Command{
		Use:   "import [backup-file]",
		Short: "Restore progress and settings from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			b, err := store.ReadBackup(f)
			if err != nil {
				return err
			}
			return withStore(cmd, func(ctx context.Context, st store.ProgressStore) error {
				state, err := store.ImportProgress(ctx, st, b)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %d chapter(s) and %d quiz score(s)\n", len(state.Chapters), len(state.QuizScores))
				return nil
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Erase progress, wrong answers, certificates and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("reset erases all learning progress; rerun with --yes to confirm")
			}
			return withStore(cmd, func(ctx context.Context, st store.ProgressStore) error {
				if err := store.ResetProgress(ctx, st); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Progress reset")
				return nil
			})
		},
	}
	reset.Flags().Bool("yes", false, "Confirm the reset")

	progress.AddCommand(show, complete, clearWrong, export, restore, reset)
	return progress
}

func certCmd() *cobra.Command {
	cert := &cobra.Command{
		Use:   "cert",
		Short: "Completion certificates",
	}
	issue := &cobra.Command{
		Use:   "issue [course-file]",
		Short: "Issue a certificate when the learner is eligible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := config.NewCourseParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return withProgress(cmd, func(ctx context.Context, state *domain.ProgressState) (bool, error) {
				c, err := learning.IssueCertificate(state, course, time.Now())
				if err != nil {
					return false, err
				}
				fmt.Fprintf(out, "Certificate %s issued to %s on %s\n",
					c.CertificateNumber, c.UserID, c.IssuedAt.Format("2006-01-02"))
				return true, nil
			})
		},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List issued certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return withProgress(cmd, func(ctx context.Context, state *domain.ProgressState) (bool, error) {
				if len(state.Certificates) == 0 {
					fmt.Fprintln(out, "No certificates issued")
				}
				for _, c := range state.Certificates {
					fmt.Fprintf(out, "%s  %s  required chapters %d  average %d%%\n",
						c.CertificateNumber, c.IssuedAt.Format("2006-01-02"), c.ChapterCompletion, c.AverageScore)
				}
				return false, nil
			})
		},
	}
	cert.AddCommand(issue, list)
	return cert
}

func initLearningCommands() {
	rootCmd.AddCommand(quizCmd())
	rootCmd.AddCommand(progressCmd())
	rootCmd.AddCommand(certCmd())
}
