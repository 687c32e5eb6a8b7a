package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PartType represents the fabrication category of a part
type PartType int

const (
	PlateRoll PartType = iota
	AngleRoll
	PipeRoll
	TubeRoll
	BeamRoll
	ChannelRoll
	FlatBar
	FlatStock
	SectionRoll
	OtherPart
)

// String method for PartType enum
func (p PartType) String() string {
	switch p {
	case PlateRoll:
		return "plate_roll"
	case AngleRoll:
		return "angle_roll"
	case PipeRoll:
		return "pipe_roll"
	case TubeRoll:
		return "tube_roll"
	case BeamRoll:
		return "beam_roll"
	case ChannelRoll:
		return "channel_roll"
	case FlatBar:
		return "flat_bar"
	case FlatStock:
		return "flat_stock"
	case SectionRoll:
		return "section_roll"
	case OtherPart:
		return "other"
	default:
		return "unknown"
	}
}

// ParsePartType parses a part type from its configured string form
func ParsePartType(s string) (PartType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plate_roll":
		return PlateRoll, nil
	case "angle_roll":
		return AngleRoll, nil
	case "pipe_roll":
		return PipeRoll, nil
	case "tube_roll":
		return TubeRoll, nil
	case "beam_roll":
		return BeamRoll, nil
	case "channel_roll":
		return ChannelRoll, nil
	case "flat_bar":
		return FlatBar, nil
	case "flat_stock":
		return FlatStock, nil
	case "section_roll":
		return SectionRoll, nil
	case "other":
		return OtherPart, nil
	default:
		return OtherPart, fmt.Errorf("invalid part type: %s", s)
	}
}

// MaterialCategory represents the broad material family of a part
type MaterialCategory int

const (
	Steel MaterialCategory = iota
	Stainless
	Aluminum
	AllMaterials
)

// String method for MaterialCategory enum
func (m MaterialCategory) String() string {
	switch m {
	case Steel:
		return "steel"
	case Stainless:
		return "stainless"
	case Aluminum:
		return "aluminum"
	case AllMaterials:
		return "all"
	default:
		return "unknown"
	}
}

// ParseMaterialCategory parses a material category. An empty string is
// treated as steel, matching how unset categories behave in the shop's
// existing rule data.
func ParseMaterialCategory(s string) (MaterialCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "steel":
		return Steel, nil
	case "stainless":
		return Stainless, nil
	case "aluminum":
		return Aluminum, nil
	case "all":
		return AllMaterials, nil
	default:
		return Steel, fmt.Errorf("invalid material category: %s", s)
	}
}

// SizeField selects which part attribute a labor minimum rule compares against
type SizeField int

const (
	SizeThickness SizeField = iota
	SizeAngle
	SizeSection
	SizeOuterDiameter
)

// String method for SizeField enum
func (f SizeField) String() string {
	switch f {
	case SizeThickness:
		return "thickness"
	case SizeAngle:
		return "angleSize"
	case SizeSection:
		return "sectionSize"
	case SizeOuterDiameter:
		return "outerDiameter"
	default:
		return "unknown"
	}
}

// ParseSizeField parses a size field selector from its configured string form
func ParseSizeField(s string) (SizeField, error) {
	switch strings.TrimSpace(s) {
	case "thickness":
		return SizeThickness, nil
	case "angleSize":
		return SizeAngle, nil
	case "sectionSize":
		return SizeSection, nil
	case "outerDiameter":
		return SizeOuterDiameter, nil
	default:
		return SizeThickness, fmt.Errorf("invalid size field: %s (expected: thickness, angleSize, sectionSize, or outerDiameter)", s)
	}
}

// Part represents a single line item on an estimate. Sizes are in inches,
// costs are per-unit currency amounts.
type Part struct {
	Label            string
	PartType         PartType
	MaterialGrade    string
	MaterialCategory MaterialCategory
	Thickness        decimal.Decimal
	AngleSize        decimal.Decimal
	SectionSize      decimal.Decimal
	OuterDiameter    decimal.Decimal
	Width            decimal.Decimal
	SeamLength       decimal.Decimal
	BendDiameter     decimal.Decimal // requested centerline diameter, zero = no bend requested
	MaterialCost     decimal.Decimal
	LaborCost        decimal.Decimal // zero = derive from LaborHours at pricing time
	LaborHours       decimal.Decimal
	Quantity         int64
}

// SizeAttribute returns the part attribute selected by a size field
func (p *Part) SizeAttribute(field SizeField) decimal.Decimal {
	switch field {
	case SizeAngle:
		return p.AngleSize
	case SizeSection:
		return p.SectionSize
	case SizeOuterDiameter:
		return p.OuterDiameter
	default:
		return p.Thickness
	}
}
