package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/ieee0824/transcript-text/textutil"
)

// Real is a float64 config value that also accepts the textual spellings of
// infinity and NaN understood by textutil.ParseReal, such as -inf or 1.#INF.
type Real float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Real) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	// YAML's own .inf/.nan spellings
	switch node.Value {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		*r = Real(math.Inf(1))
		return nil
	case "-.inf", "-.Inf", "-.INF":
		*r = Real(math.Inf(-1))
		return nil
	case ".nan", ".NaN", ".NAN":
		*r = Real(math.NaN())
		return nil
	}
	v, err := textutil.ParseFloat64(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = Real(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Real) MarshalYAML() (any, error) {
	return float64(r), nil
}
