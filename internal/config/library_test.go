package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryParser_LoadDefault(t *testing.T) {
	lib, err := NewLibraryParser().LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, []string{"가이드", "교육자료", "양식", "템플릿"}, lib.Categories)
	require.Len(t, lib.Documents, 6)
	assert.Equal(t, "doc1", lib.Documents[0].ID)
	assert.Equal(t, domain.DocumentGuide, lib.Documents[0].Type)
	assert.Equal(t, []string{"이지케어", "급여명세서", "입력방법"}, lib.Documents[0].Tags)
	assert.Equal(t, domain.DocumentForm, lib.Documents[5].Type)
	assert.Equal(t, "양식", lib.Documents[5].Category)
}

func TestLibraryParser_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
documents:
  - id: t1
    title: 월간 일정표
    type: template
    category: 템플릿
    download_url: https://example.org/t1.xlsx
`), 0o600))

	lib, err := NewLibraryParser().Load(path)
	require.NoError(t, err)
	require.Len(t, lib.Documents, 1)
	assert.Equal(t, domain.DocumentTemplate, lib.Documents[0].Type)
	assert.Equal(t, "https://example.org/t1.xlsx", lib.Documents[0].DownloadURL)

	_, err = NewLibraryParser().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLibraryParser_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"missing id", `documents: [{title: a, type: guide, category: c}]`, "id is required"},
		{"duplicate id", `documents: [{id: a, title: a, type: guide, category: c}, {id: a, title: b, type: form, category: c}]`, "duplicate id"},
		{"missing title", `documents: [{id: a, type: guide, category: c}]`, "title is required"},
		{"unknown type", `documents: [{id: a, title: a, type: video, category: c}]`, "unknown type"},
		{"missing category", `documents: [{id: a, title: a, type: guide}]`, "category is required"},
		{"unlisted category", "categories: [가이드]\ndocuments: [{id: a, title: a, type: form, category: 양식}]", "is not listed"},
		{"bad yaml", `documents: [`, "failed to parse YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLibraryParser().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
