package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/gen-runtime/errors"
)

// Step ops accepted in scenario files.
const (
	OpResume = "resume"
	OpThrow  = "throw"
	OpClose  = "close"
)

// Scenario is an ordered script of operations applied to one instance of
// a named program.
type Scenario struct {
	Name    string `yaml:"name,omitempty"`
	Program string `yaml:"program"`
	Steps   []Step `yaml:"steps"`
}

// Step is a single operation with an optional expectation.
type Step struct {
	Op     string  `yaml:"op"`
	Value  any     `yaml:"value,omitempty"` // resume input
	Error  string  `yaml:"error,omitempty"` // throw message
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the outcome a step must produce. Nil fields are not
// checked.
type Expect struct {
	Value any    `yaml:"value,omitempty"`
	Done  *bool  `yaml:"done,omitempty"`
	Error string `yaml:"error,omitempty"` // substring of the step error
}

// Parse decodes and validates a scenario from YAML bytes.
func Parse(data []byte) (*Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.InvalidData(errors.PhaseParse, nil, "scenario payload is empty")
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.ParseFailed("scenario", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ParseFile loads and validates a scenario from a file path.
func ParseFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseFailed(path, err)
	}
	sc, perr := Parse(data)
	if perr != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Detail("%s", path).
			Cause(perr).
			Build()
	}
	return sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Program == "" {
		return errors.InvalidData(errors.PhaseParse, []string{"program"}, "program name is required")
	}
	if len(sc.Steps) == 0 {
		return errors.InvalidData(errors.PhaseParse, []string{"steps"}, "at least one step is required")
	}
	for i, step := range sc.Steps {
		path := []string{"steps", fmt.Sprint(i)}
		switch step.Op {
		case OpResume:
		case OpThrow:
			if step.Error == "" {
				return errors.InvalidData(errors.PhaseParse, append(path, "error"),
					"throw step requires an error message")
			}
		case OpClose:
			if step.Value != nil {
				return errors.InvalidData(errors.PhaseParse, append(path, "value"),
					"close step takes no value")
			}
		case "":
			return errors.InvalidData(errors.PhaseParse, append(path, "op"), "op is required")
		default:
			return errors.InvalidData(errors.PhaseParse, append(path, "op"),
				fmt.Sprintf("unknown op %q", step.Op))
		}
	}
	return nil
}
