// Package catalog enumerates the selectable building blocks of a run:
// environments, agents, visualisers and exit conditions. Every variant is
// addressable by three case-insensitive names and carries descriptors for
// the options it accepts.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies one of the four closed component families a run is
// assembled from.
type Category int

const (
	CategoryEnvironment Category = iota
	CategoryAgent
	CategoryVisualiser
	CategoryExitCondition
)

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{CategoryEnvironment, CategoryAgent, CategoryVisualiser, CategoryExitCondition}
}

func (c Category) String() string {
	switch c {
	case CategoryEnvironment:
		return "environment"
	case CategoryAgent:
		return "agent"
	case CategoryVisualiser:
		return "visualiser"
	case CategoryExitCondition:
		return "exit condition"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Plural returns the lowercase plural form used in messages.
func (c Category) Plural() string {
	switch c {
	case CategoryEnvironment:
		return "environments"
	case CategoryAgent:
		return "agents"
	case CategoryVisualiser:
		return "visualisers"
	case CategoryExitCondition:
		return "exit conditions"
	}
	return c.String() + "s"
}

// Headline returns the banner line used when listing the category.
func (c Category) Headline() string {
	switch c {
	case CategoryEnvironment:
		return "Available Environments"
	case CategoryAgent:
		return "Available Agents"
	case CategoryVisualiser:
		return "Available Visualisers"
	case CategoryExitCondition:
		return "Available Exit Conditions"
	}
	return "Available " + c.Plural()
}

// OptionKind tags how an option value is parsed.
type OptionKind int

const (
	KindFloat OptionKind = iota
	KindBool
	KindUint
	KindString
	KindUintPair
)

func (k OptionKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindUint:
		return "uint"
	case KindString:
		return "string"
	case KindUintPair:
		return "(uint, uint)"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// OptionDescriptor describes one configurable value of a variant.
type OptionDescriptor struct {
	Name        string
	Description string
	Default     string
	Kind        OptionKind
}

// Variant identifies one selectable member of a category. Each variant is
// reachable under a display name, a long machine-friendly name and a short
// name.
type Variant struct {
	Category  Category
	NiceName  string
	LongName  string
	ShortName string
}

// Aliases returns the accepted spellings in display, long, short order.
func (v Variant) Aliases() []string {
	return []string{v.NiceName, v.LongName, v.ShortName}
}

func (v Variant) String() string {
	return v.NiceName
}

// ErrNotFound is returned when a name resolves to no variant.
var ErrNotFound = errors.New("not found")

// Variants returns the members of a category in listing order.
func Variants(c Category) []Variant {
	return append([]Variant(nil), variantsByCategory[c]...)
}

// Lookup resolves name against every alias of the category's variants,
// ignoring case and surrounding whitespace.
func Lookup(c Category, name string) (Variant, error) {
	trimmed := strings.TrimSpace(name)
	for _, v := range variantsByCategory[c] {
		for _, alias := range v.Aliases() {
			if strings.EqualFold(trimmed, alias) {
				return v, nil
			}
		}
	}
	return Variant{}, fmt.Errorf("%w: did not find %q in available %s", ErrNotFound, name, c.Plural())
}
