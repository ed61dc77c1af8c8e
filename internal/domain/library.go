package domain

import "time"

// DocumentType classifies a library document
type DocumentType string

const (
	DocumentForm     DocumentType = "form"
	DocumentGuide    DocumentType = "guide"
	DocumentTemplate DocumentType = "template"
)

// Valid reports whether the type is one the library knows
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentForm, DocumentGuide, DocumentTemplate:
		return true
	}
	return false
}

// LibraryDocument is a downloadable guide, form or template
type LibraryDocument struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description" json:"description"`
	Type        DocumentType `yaml:"type" json:"type"`
	Category    string       `yaml:"category" json:"category"`
	Tags        []string     `yaml:"tags" json:"tags"`
	DownloadURL string       `yaml:"download_url,omitempty" json:"downloadUrl,omitempty"`
	Content     string       `yaml:"content,omitempty" json:"content,omitempty"`
}

// Library is the document collection shown in the resource room
type Library struct {
	Categories []string          `yaml:"categories" json:"categories"`
	Documents  []LibraryDocument `yaml:"documents" json:"documents"`
}

// ProgressBackup is an exported copy of a learner's state. Either part may
// be absent in an imported file.
type ProgressBackup struct {
	Progress  *ProgressState `json:"progress,omitempty"`
	Settings  *UserSettings  `json:"settings,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
