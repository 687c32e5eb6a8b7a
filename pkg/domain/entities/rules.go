package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings document names used by the loaders and the document store
const (
	DocLaborMinimums  = "labor_minimums"
	DocRollLimits     = "roll_limits"
	DocMandrelDies    = "mandrel_dies"
	DocMaterialGrades = "material_grades"
	DocWeldRates      = "weld_rates"
	DocTaxSettings    = "tax_settings"
)

// DefaultRateKey is the fallback entry in a weld rate table
const DefaultRateKey = "default"

// LaborMinimumRule defines a floor charge for estimates containing a
// matching part. Bounds are inclusive; a nil bound is unbounded. A rule
// with no size bounds matches any size for its part type.
type LaborMinimumRule struct {
	PartType  PartType
	Label     string
	SizeField SizeField
	MinSize   *decimal.Decimal
	MaxSize   *decimal.Decimal
	MinWidth  *decimal.Decimal
	MaxWidth  *decimal.Decimal
	Minimum   decimal.Decimal
}

// BoundsValid reports whether the rule's bounds are internally consistent.
// Rules with inverted bounds are treated as never-matching rather than
// rejected at evaluation time; the settings layer should have caught them
// at save time.
func (r *LaborMinimumRule) BoundsValid() bool {
	if r.MinSize != nil && r.MaxSize != nil && r.MinSize.GreaterThan(*r.MaxSize) {
		return false
	}
	if r.MinWidth != nil && r.MaxWidth != nil && r.MinWidth.GreaterThan(*r.MaxWidth) {
		return false
	}
	return true
}

// RollLimitRule defines the smallest centerline bend diameter the shop can
// roll for a given tube/pipe OD and material family.
type RollLimitRule struct {
	OD               decimal.Decimal
	MaterialCategory MaterialCategory
	MinDiameter      decimal.Decimal
	Label            string
}

// MandrelDie represents bend tooling that can go tighter than the standard
// roll limit for its OD. WallThickness is display-only.
type MandrelDie struct {
	OD            decimal.Decimal
	WallThickness string
	MinDiameter   decimal.Decimal
	Label         string
	Notes         string
}

// Fits reports whether the die can produce the requested centerline diameter
func (d *MandrelDie) Fits(requestedDiameter decimal.Decimal) bool {
	return d.MinDiameter.LessThanOrEqual(requestedDiameter)
}

// MaterialGrade describes a material the shop stocks and which part types
// it may be quoted for. Strength values are display strings for reference
// on the shop floor, never used in arithmetic.
type MaterialGrade struct {
	Name            string
	PartTypes       []PartType
	YieldStrength   string
	TensileStrength string
}

// AppliesTo reports whether the grade is configured for a part type
func (g *MaterialGrade) AppliesTo(pt PartType) bool {
	for _, t := range g.PartTypes {
		if t == pt {
			return true
		}
	}
	return false
}

// WeldRateTable maps material grade name to weld price per foot. The
// DefaultRateKey entry is used for grades not present in the table.
type WeldRateTable map[string]decimal.Decimal

// TaxSettings holds the shop-wide fallback rates. Percentages are stored
// as percents (8.25 = 8.25%), labor rate is currency per hour.
type TaxSettings struct {
	DefaultTaxRate        decimal.Decimal
	DefaultLaborRate      decimal.Decimal
	DefaultMaterialMarkup decimal.Decimal
}

// DocumentInfo carries the version metadata of a loaded settings document
type DocumentInfo struct {
	Name       string
	Version    int64
	ModifiedAt time.Time
}

// RuleSet is an immutable snapshot of every rule table an estimate
// computation consults. It is loaded once per estimate session and
// replaced wholesale when the admin settings change; the engine never
// mutates it.
type RuleSet struct {
	LaborMinimums  []LaborMinimumRule
	RollLimits     []RollLimitRule
	MandrelDies    []MandrelDie
	MaterialGrades []MaterialGrade
	WeldRates      WeldRateTable
	Tax            TaxSettings
	Documents      map[string]DocumentInfo
}

// Grade looks up a material grade by name
func (rs *RuleSet) Grade(name string) (*MaterialGrade, bool) {
	for i := range rs.MaterialGrades {
		if rs.MaterialGrades[i].Name == name {
			return &rs.MaterialGrades[i], true
		}
	}
	return nil, false
}
