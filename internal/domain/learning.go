package domain

import (
	"time"

	"gopkg.in/yaml.v3"
)

// AnswerKind tags the shape of an Answer
type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerSingle
	AnswerMultiple
)

// Answer is either a single choice or a set of choices. The zero value is
// "no answer".
type Answer struct {
	Kind   AnswerKind
	Values []string
}

// Single builds a one-choice answer
func Single(v string) Answer {
	return Answer{Kind: AnswerSingle, Values: []string{v}}
}

// Multiple builds a multi-choice answer
func Multiple(vs ...string) Answer {
	return Answer{Kind: AnswerMultiple, Values: append([]string(nil), vs...)}
}

// IsEmpty reports whether the answer carries no choices
func (a Answer) IsEmpty() bool {
	if a.Kind == AnswerNone {
		return true
	}
	for _, v := range a.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// UnmarshalYAML accepts either a scalar or a sequence
func (a *Answer) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*a = Multiple(list...)
		return nil
	}
	var one string
	if err := value.Decode(&one); err != nil {
		return err
	}
	*a = Single(one)
	return nil
}

// MarshalYAML writes a scalar for single answers and a sequence otherwise
func (a Answer) MarshalYAML() (any, error) {
	switch a.Kind {
	case AnswerSingle:
		if len(a.Values) > 0 {
			return a.Values[0], nil
		}
		return "", nil
	case AnswerMultiple:
		return a.Values, nil
	}
	return nil, nil
}

// QuizQuestion is one end-of-chapter question
type QuizQuestion struct {
	ID          string   `yaml:"id" json:"id"`
	Question    string   `yaml:"question" json:"question"`
	Type        string   `yaml:"type" json:"type"`
	Options     []string `yaml:"options" json:"options"`
	Correct     Answer   `yaml:"correct_answer" json:"-"`
	Explanation string   `yaml:"explanation" json:"explanation"`
	Sources     []string `yaml:"sources" json:"sources"`
	Difficulty  string   `yaml:"difficulty" json:"difficulty"`
}

// MiniExercise is an in-chapter practice item
type MiniExercise struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Type        string   `yaml:"type" json:"type"`
	Question    string   `yaml:"question" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Correct     Answer   `yaml:"correct_answers" json:"-"`
	Explanation string   `yaml:"explanation" json:"explanation"`
}

// Section is a block of chapter reading material
type Section struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Content string   `yaml:"content" json:"content"`
	Items   []string `yaml:"items,omitempty" json:"items,omitempty"`
}

// Chapter is a unit of training content
type Chapter struct {
	ID            string         `yaml:"id" json:"id"`
	Slug          string         `yaml:"slug" json:"slug"`
	Title         string         `yaml:"title" json:"title"`
	Description   string         `yaml:"description" json:"description"`
	Order         int            `yaml:"order" json:"order"`
	Required      bool           `yaml:"required" json:"required"`
	EstimatedMin  int            `yaml:"estimated_minutes" json:"estimatedMinutes"`
	Prerequisites []string       `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	Sections      []Section      `yaml:"sections" json:"sections"`
	MiniExercises []MiniExercise `yaml:"mini_exercises" json:"miniExercises"`
	Quiz          []QuizQuestion `yaml:"quiz" json:"quiz"`
}

// Course is the full set of chapters
type Course struct {
	Title    string    `yaml:"title" json:"title"`
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}

// Chapter looks a chapter up by id or slug
func (c *Course) Chapter(idOrSlug string) (Chapter, bool) {
	for _, ch := range c.Chapters {
		if ch.ID == idOrSlug || ch.Slug == idOrSlug {
			return ch, true
		}
	}
	return Chapter{}, false
}

// ChapterProgress tracks one chapter for the learner
type ChapterProgress struct {
	Completed              bool      `json:"completed"`
	Progress               int       `json:"progress"`
	LastAccessed           time.Time `json:"lastAccessed"`
	SectionsCompleted      []string  `json:"sectionsCompleted"`
	MiniExercisesCompleted []string  `json:"miniExercisesCompleted"`
}

// QuizScore is the latest quiz attempt for a chapter
type QuizScore struct {
	Score        int       `json:"score"`
	MaxScore     int       `json:"maxScore"`
	CompletedAt  time.Time `json:"completedAt"`
	WrongAnswers []string  `json:"wrongAnswers"`
}

// WrongAnswer records a missed question for later review
type WrongAnswer struct {
	ID            string    `json:"id"`
	ChapterID     string    `json:"chapterId"`
	QuestionID    string    `json:"questionId"`
	UserAnswer    []string  `json:"userAnswer"`
	CorrectAnswer []string  `json:"correctAnswer"`
	Question      string    `json:"question"`
	Explanation   string    `json:"explanation"`
	Sources       []string  `json:"sources"`
	Timestamp     time.Time `json:"timestamp"`
}

// UserSettings are learner preferences
type UserSettings struct {
	DarkMode      bool `json:"darkMode"`
	Notifications bool `json:"notifications"`
	AutoSave      bool `json:"autoSave"`
}

// DefaultSettings mirrors the settings a new learner starts with
func DefaultSettings() UserSettings {
	return UserSettings{Notifications: true, AutoSave: true}
}

// Certificate is an issued completion certificate
type Certificate struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	IssuedAt          time.Time `json:"issuedAt"`
	ChapterCompletion int       `json:"chapterCompletion"`
	AverageScore      int       `json:"averageScore"`
	CertificateNumber string    `json:"certificateNumber"`
}

// ProgressState is the learner's full persisted state
type ProgressState struct {
	UserID       string                     `json:"userId"`
	Chapters     map[string]ChapterProgress `json:"chapters"`
	QuizScores   map[string]QuizScore       `json:"quizScores"`
	WrongAnswers []WrongAnswer              `json:"wrongAnswers"`
	Certificates []Certificate              `json:"certificates"`
	Settings     UserSettings               `json:"settings"`
}

// NewProgressState returns an empty state for a learner
func NewProgressState(userID string) *ProgressState {
	return &ProgressState{
		UserID:     userID,
		Chapters:   make(map[string]ChapterProgress),
		QuizScores: make(map[string]QuizScore),
		Settings:   DefaultSettings(),
	}
}

// EnsureMaps initializes nil maps after decoding
func (p *ProgressState) EnsureMaps() {
	if p.Chapters == nil {
		p.Chapters = make(map[string]ChapterProgress)
	}
	if p.QuizScores == nil {
		p.QuizScores = make(map[string]QuizScore)
	}
}
