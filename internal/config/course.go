package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// CourseParser loads training content
type CourseParser struct{}

// NewCourseParser creates a new course parser
func NewCourseParser() *CourseParser {
	return &CourseParser{}
}

// LoadFromFile loads a course from a YAML file
func (cp *CourseParser) LoadFromFile(filename string) (*domain.Course, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return cp.Parse(data)
}

// Parse decodes a course, validates it and orders chapters by Order
func (cp *CourseParser) Parse(data []byte) (*domain.Course, error) {
	var course domain.Course
	if err := yaml.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cp.ValidateCourse(&course); err != nil {
		return nil, fmt.Errorf("course validation failed: %w", err)
	}
	sort.SliceStable(course.Chapters, func(i, j int) bool {
		return course.Chapters[i].Order < course.Chapters[j].Order
	})
	return &course, nil
}

// ValidateCourse checks chapter and question identity and that every
// question has an answer key
func (cp *CourseParser) ValidateCourse(c *domain.Course) error {
	if len(c.Chapters) == 0 {
		return fmt.Errorf("course has no chapters")
	}
	chapters := make(map[string]bool, len(c.Chapters))
	for i, ch := range c.Chapters {
		if ch.ID == "" {
			return fmt.Errorf("chapter %d: id is required", i)
		}
		if chapters[ch.ID] {
			return fmt.Errorf("chapter %s: duplicate id", ch.ID)
		}
		chapters[ch.ID] = true

		questions := make(map[string]bool, len(ch.Quiz))
		for j, q := range ch.Quiz {
			if q.ID == "" {
				return fmt.Errorf("chapter %s question %d: id is required", ch.ID, j)
			}
			if questions[q.ID] {
				return fmt.Errorf("chapter %s question %s: duplicate id", ch.ID, q.ID)
			}
			questions[q.ID] = true
			if q.Correct.IsEmpty() {
				return fmt.Errorf("chapter %s question %s: correct_answer is required", ch.ID, q.ID)
			}
		}
		for _, ex := range ch.MiniExercises {
			if ex.Correct.IsEmpty() {
				return fmt.Errorf("chapter %s exercise %s: correct_answers is required", ch.ID, ex.ID)
			}
		}
	}
	for _, ch := range c.Chapters {
		for _, pre := range ch.Prerequisites {
			if !chapters[pre] {
				return fmt.Errorf("chapter %s: unknown prerequisite %s", ch.ID, pre)
			}
		}
	}
	return nil
}
