package game

import (
	"fmt"
	"strings"
)

// WeightedHeuristic pairs a heuristic with its non-zero coefficient.
type WeightedHeuristic struct {
	Heuristic Heuristic
	Weight    float64
}

// Composite sums its heuristics scaled by their weights. Heuristics are
// evaluated in the order they were added.
type Composite struct {
	heuristics []WeightedHeuristic
}

func NewComposite() *Composite {
	return &Composite{}
}

// Add appends a heuristic and returns the composite for chaining.
func (c *Composite) Add(h Heuristic, weight float64) (*Composite, error) {
	if h == nil {
		return c, ErrNilHeuristic
	}
	if weight == 0 {
		return c, fmt.Errorf("%w: %s", ErrInvalidWeight, Name(h))
	}
	c.heuristics = append(c.heuristics, WeightedHeuristic{Heuristic: h, Weight: weight})
	return c, nil
}

// Heuristics returns the weighted heuristics in insertion order.
func (c *Composite) Heuristics() []WeightedHeuristic {
	out := make([]WeightedHeuristic, len(c.heuristics))
	copy(out, c.heuristics)
	return out
}

func (c *Composite) Validate() error {
	if len(c.heuristics) == 0 {
		return ErrEmptyComposite
	}
	return nil
}

// Evaluate panics on an empty composite: searching without a heuristic is a
// programming error, not a game condition.
func (c *Composite) Evaluate(gs *GameState) float64 {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	score := 0.0
	for _, wh := range c.heuristics {
		score += wh.Weight * wh.Heuristic.Evaluate(gs)
	}
	return score
}

func (c *Composite) String() string {
	parts := make([]string, len(c.heuristics))
	for i, wh := range c.heuristics {
		parts[i] = fmt.Sprintf("%g*%s", wh.Weight, Name(wh.Heuristic))
	}
	return strings.Join(parts, "+")
}

type named struct {
	Heuristic
	name string
}

func (n named) String() string { return n.name }

func (n named) Validate() error {
	if v, ok := n.Heuristic.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// Validator is implemented by heuristics that can be misconfigured.
type Validator interface {
	Validate() error
}

// Named labels a heuristic for logs and experiment records.
func Named(name string, h Heuristic) Heuristic {
	return named{Heuristic: h, name: name}
}

// Name returns the label of a heuristic, falling back to its type.
func Name(h Heuristic) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", h)
}
