package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// TransformRegistry creates transforms from string parameters for the CLI
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory builds a transform from parameters
type TransformFactory func(params map[string]string) (WorksheetTransform, error)

// NewTransformRegistry creates a registry with the built-in transforms
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_day", createSetDayType)
	registry.Register("set_tier", createSetBurdenTier)
	registry.Register("set_grade", createSetCareGrade)
	registry.Register("set_quantity", createSetQuantity)
	registry.Register("add_service", createAddService)
	registry.Register("remove_service", createRemoveService)

	return registry
}

// Register adds a transform factory
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create builds a transform by name
func (r *TransformRegistry) Create(name string, params map[string]string) (WorksheetTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the registered transform names in sorted order
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value", for example
// "set_quantity:service=visit-1,quantity=8"
func (r *TransformRegistry) ParseTransformSpec(spec string) (WorksheetTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func intParam(params map[string]string, transform, key string) (int, error) {
	raw, err := requireParam(params, transform, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func createSetDayType(params map[string]string) (WorksheetTransform, error) {
	day, err := requireParam(params, "set_day", "day")
	if err != nil {
		return nil, err
	}
	return &SetDayType{DayType: domain.DayType(day)}, nil
}

func createSetBurdenTier(params map[string]string) (WorksheetTransform, error) {
	tier, err := requireParam(params, "set_tier", "tier")
	if err != nil {
		return nil, err
	}
	return &SetBurdenTier{TierID: tier}, nil
}

func createSetCareGrade(params map[string]string) (WorksheetTransform, error) {
	grade, err := requireParam(params, "set_grade", "grade")
	if err != nil {
		return nil, err
	}
	return &SetCareGrade{GradeID: grade}, nil
}

func createSetQuantity(params map[string]string) (WorksheetTransform, error) {
	service, err := requireParam(params, "set_quantity", "service")
	if err != nil {
		return nil, err
	}
	qty, err := intParam(params, "set_quantity", "quantity")
	if err != nil {
		return nil, err
	}
	return &SetQuantity{ServiceID: service, Quantity: qty}, nil
}

func createAddService(params map[string]string) (WorksheetTransform, error) {
	service, err := requireParam(params, "add_service", "service")
	if err != nil {
		return nil, err
	}
	qty := 1
	if _, ok := params["quantity"]; ok {
		if qty, err = intParam(params, "add_service", "quantity"); err != nil {
			return nil, err
		}
	}
	add := &AddService{ServiceID: service, Quantity: qty, BurdenTierID: params["tier"]}
	if day := params["day"]; day != "" {
		add.DayType = domain.NormalizeDayType(day)
	}
	return add, nil
}

func createRemoveService(params map[string]string) (WorksheetTransform, error) {
	service, err := requireParam(params, "remove_service", "service")
	if err != nil {
		return nil, err
	}
	return &RemoveService{ServiceID: service}, nil
}
