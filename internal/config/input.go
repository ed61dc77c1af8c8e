package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of worksheet files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{validate: NewValidator("yaml")}
}

// NewValidator returns a validator that reports field names from the given
// struct tag, so messages match the document the user wrote
func NewValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadFromFile loads a worksheet from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Worksheet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a worksheet and validates its shape. Catalog references are
// not checked here; the engine reports them per line.
func (ip *InputParser) Parse(data []byte) (*domain.Worksheet, error) {
	var ws domain.Worksheet
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateWorksheet(&ws); err != nil {
		return nil, fmt.Errorf("worksheet validation failed: %w", err)
	}
	return &ws, nil
}

// ValidateWorksheet checks required fields after line defaults are applied
func (ip *InputParser) ValidateWorksheet(ws *domain.Worksheet) error {
	normalized := ws.Normalize()
	if err := ip.validate.Struct(normalized); err != nil {
		return DescribeValidation(err)
	}
	return nil
}

// DescribeValidation flattens validator errors into one readable error
func DescribeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
