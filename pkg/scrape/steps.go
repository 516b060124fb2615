package scrape

import (
	"os"
	"strings"

	"github.com/titanous/json5"

	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// Step types understood in a step list.
const (
	StepWaitForNetworkIdle = "waitForNetworkIdle"
	StepWait               = "wait"
	StepClick              = "click"
	StepGet                = "get"
)

// Step is one entry of a scrape scenario. Only "get" steps affect a static
// fetch: they replace the selector named by Variable.
type Step struct {
	Type     string `json:"type"`
	Selector string `json:"selector,omitempty"`
	Wait     int    `json:"wait,omitempty"`
	Variable string `json:"variable,omitempty"`
}

// LoadSteps reads a step list given inline or as a file path. Inline
// lists start with "[" or "{"; comments and trailing commas are allowed.
func LoadSteps(raw string) ([]Step, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	content := []byte(raw)
	source := "inline"
	if !strings.HasPrefix(raw, "[") && !strings.HasPrefix(raw, "{") {
		data, err := os.ReadFile(raw)
		if err != nil {
			return nil, errors.WrapIO("read", raw, err)
		}
		content, source = data, raw
	}

	var v any
	if err := json5.Unmarshal(content, &v); err != nil {
		return nil, errors.WrapParse("json5", source, err)
	}
	if _, ok := v.([]any); !ok {
		return nil, errors.NewValidationError("steps", v, "must be a list of steps")
	}

	var steps []Step
	if err := json5.Unmarshal(content, &steps); err != nil {
		return nil, errors.WrapParse("json5", source, err)
	}
	return steps, nil
}

// Apply returns sel with the overrides of every "get" step applied, and
// the types of the steps that need a browser and were not executed.
func Apply(sel Selectors, steps []Step) (Selectors, []string) {
	var ignored []string
	for _, step := range steps {
		switch step.Type {
		case "":
		case StepGet:
			if step.Selector == "" {
				continue
			}
			switch strings.ToLower(step.Variable) {
			case "item":
				sel.Item = step.Selector
			case "model":
				sel.Model = step.Selector
			case "price":
				sel.Price = step.Selector
			case "link":
				sel.Link = step.Selector
			}
		default:
			ignored = append(ignored, step.Type)
		}
	}
	return sel, ignored
}
