package models

import "strings"

// Variant selects a component skin.
type Variant string

const (
	VariantDefault  Variant = "default"
	VariantMinimal  Variant = "minimal"
	VariantBold     Variant = "bold"
	VariantRounded  Variant = "rounded"
	VariantSharp    Variant = "sharp"
	VariantCreative Variant = "creative"
)

// Size selects a component scale.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Normalize maps unknown variants to VariantDefault.
func (v Variant) Normalize() Variant {
	switch v {
	case VariantDefault, VariantMinimal, VariantBold, VariantRounded, VariantSharp, VariantCreative:
		return v
	default:
		return VariantDefault
	}
}

// Normalize maps unknown sizes to SizeMedium.
func (s Size) Normalize() Size {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return s
	default:
		return SizeMedium
	}
}

type Components struct {
	Button ComponentConfig `json:"button" yaml:"button"`
	Input  ComponentConfig `json:"input"  yaml:"input"`
	Card   ComponentConfig `json:"card"   yaml:"card"`
	Form   ComponentConfig `json:"form"   yaml:"form"`
}

type ComponentConfig struct {
	Variant       Variant `json:"variant"                 yaml:"variant"`
	Size          Size    `json:"size"                    yaml:"size"`
	CustomClasses string  `json:"customClasses,omitempty" yaml:"customClasses,omitempty"`
}

// Classes returns the class list a presentation adapter puts on a component
// of the given kind, e.g. "btn btn-rounded btn-medium".
func (c ComponentConfig) Classes(prefix string) string {
	classes := []string{
		prefix,
		prefix + "-" + string(c.Variant.Normalize()),
		prefix + "-" + string(c.Size.Normalize()),
	}
	if extra := strings.TrimSpace(c.CustomClasses); extra != "" {
		classes = append(classes, extra)
	}
	return strings.Join(classes, " ")
}
