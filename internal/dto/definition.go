package dto

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Definition is the serialized form of an experiment.
// It uses "mapstructure" tags so YAML and JSON documents decode through the same path.
type Definition struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Picking     *Picking        `json:"picking,omitempty" yaml:"picking,omitempty" mapstructure:"picking"`
	Happenings  []HappeningSpec `json:"happenings,omitempty" yaml:"happenings,omitempty" mapstructure:"happenings"`
}

// Picking describes a repeated random pick.
type Picking struct {
	// Choices is a string (one label per character) or a list of labels.
	Choices   any  `json:"choices" yaml:"choices" mapstructure:"choices"`
	Repeats   int  `json:"repeats" yaml:"repeats" mapstructure:"repeats"`
	Replacing bool `json:"replacing" yaml:"replacing" mapstructure:"replacing"`
}

// HappeningSpec is one explicit happening.
type HappeningSpec struct {
	Name        string          `json:"name" yaml:"name" mapstructure:"name"`
	Probability string          `json:"probability" yaml:"probability" mapstructure:"probability"`
	Then        []HappeningSpec `json:"then,omitempty" yaml:"then,omitempty" mapstructure:"then"`
}

// Experiment builds and validates the domain experiment.
func (d Definition) Experiment() (*domain.Experiment, error) {
	if d.Picking != nil && len(d.Happenings) > 0 {
		return nil, fmt.Errorf("%w: definition %q sets both picking and happenings", domain.ErrInvalidInput, d.Name)
	}
	if d.Picking != nil {
		return domain.PickingAny(d.Picking.Choices, d.Picking.Repeats, d.Picking.Replacing)
	}

	happenings := make([]domain.Happening, 0, len(d.Happenings))
	for _, spec := range d.Happenings {
		h, err := spec.happening()
		if err != nil {
			return nil, err
		}
		happenings = append(happenings, h)
	}
	return domain.NewExperiment(happenings...)
}

func (s HappeningSpec) happening() (domain.Happening, error) {
	p, err := domain.ParseProbability(s.Probability)
	if err != nil {
		return domain.Happening{}, fmt.Errorf("happening %q: %w", s.Name, err)
	}
	next := make([]domain.Happening, 0, len(s.Then))
	for _, child := range s.Then {
		h, err := child.happening()
		if err != nil {
			return domain.Happening{}, err
		}
		next = append(next, h)
	}
	return domain.NewHappening(s.Name, p, next...), nil
}

// FromExperiment writes exp as an explicit happening tree.
func FromExperiment(name, description string, exp *domain.Experiment) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Happenings:  specs(exp.Happenings()),
	}
}

func specs(hs []domain.Happening) []HappeningSpec {
	if len(hs) == 0 {
		return nil
	}
	out := make([]HappeningSpec, len(hs))
	for i, h := range hs {
		out[i] = HappeningSpec{
			Name:        h.Name(),
			Probability: h.Probability().String(),
			Then:        specs(h.Next()),
		}
	}
	return out
}

// Decode maps a generic document (as produced by yaml.v3 or encoding/json)
// onto a Definition. Unknown keys are rejected; numeric probabilities are
// accepted and normalised to text.
func Decode(raw map[string]any) (Definition, error) {
	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  numberToText,
		ErrorUnused: true,
		Result:      &def,
	})
	if err != nil {
		return Definition{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return def, nil
}

// numberToText lets authors write `probability: 1` or `probability: 0.5`.
func numberToText(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	}
	return data, nil
}

// ParseYAML decodes a YAML (or JSON, which is valid YAML) document.
func ParseYAML(data []byte) (Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Definition{}, fmt.Errorf("%w: failed to parse definition: %v", domain.ErrInvalidInput, err)
	}
	if raw == nil {
		return Definition{}, nil
	}
	return Decode(raw)
}

// ParseJSON decodes a JSON document.
func ParseJSON(data []byte) (Definition, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Definition{}, fmt.Errorf("%w: failed to parse definition: %v", domain.ErrInvalidInput, err)
	}
	return Decode(raw)
}
