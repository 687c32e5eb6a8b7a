package services

import (
	"fmt"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

// RuleValidator provides validation for rule table integrity. The settings
// layer runs it at save time; the CLI runs it before pricing so a bad
// table fails loudly instead of silently never matching.
type RuleValidator struct{}

// NewRuleValidator creates a new rule validator
func NewRuleValidator() *RuleValidator {
	return &RuleValidator{}
}

// ValidationResult contains the results of rule set validation. Errors
// make the rule set unusable; warnings indicate rules that will behave
// as documented fallbacks (never-matching bounds, missing default rate).
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the rule set can be used for pricing
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateRuleSet performs integrity checks across every rule table
func (v *RuleValidator) ValidateRuleSet(rs *entities.RuleSet) *ValidationResult {
	result := &ValidationResult{
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	for i := range rs.LaborMinimums {
		rule := &rs.LaborMinimums[i]
		if !rule.BoundsValid() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("labor minimum %q has inverted bounds and will never match", rule.Label))
		}
		if rule.Minimum.IsNegative() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("labor minimum %q has negative minimum %s", rule.Label, rule.Minimum))
		}
	}

	for i := range rs.RollLimits {
		rule := &rs.RollLimits[i]
		if !rule.OD.IsPositive() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("roll limit %q has non-positive OD %s", rule.Label, rule.OD))
		}
		if !rule.MinDiameter.IsPositive() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("roll limit %q has non-positive minimum diameter %s", rule.Label, rule.MinDiameter))
		}
	}

	seenDies := make(map[string]string)
	for i := range rs.MandrelDies {
		die := &rs.MandrelDies[i]
		if !die.OD.IsPositive() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("mandrel die %q has non-positive OD %s", die.Label, die.OD))
		}
		if !die.MinDiameter.IsPositive() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("mandrel die %q has non-positive minimum diameter %s", die.Label, die.MinDiameter))
		}
		key := die.OD.Round(3).String() + "|" + die.MinDiameter.Round(3).String()
		if other, exists := seenDies[key]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("mandrel dies %q and %q duplicate OD %s at minimum diameter %s",
					other, die.Label, die.OD, die.MinDiameter))
		} else {
			seenDies[key] = die.Label
		}
	}

	for grade, rate := range rs.WeldRates {
		if rate.IsNegative() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("weld rate for %q is negative: %s", grade, rate))
		}
	}
	if _, ok := rs.WeldRates[entities.DefaultRateKey]; !ok {
		result.Warnings = append(result.Warnings,
			"weld rate table has no default entry; unknown grades will fail to price")
	}

	seenGrades := make(map[string]bool)
	for i := range rs.MaterialGrades {
		grade := &rs.MaterialGrades[i]
		if seenGrades[grade.Name] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("duplicate material grade: %s", grade.Name))
		}
		seenGrades[grade.Name] = true
		if len(grade.PartTypes) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("material grade %q is not configured for any part type", grade.Name))
		}
	}

	return result
}

// ValidatePartGrades returns a warning for each part whose material grade
// is known but not configured for the part's type. Unknown grades are not
// flagged here; they surface through the weld rate fallback instead.
func (v *RuleValidator) ValidatePartGrades(parts []entities.Part, grades []entities.MaterialGrade) []string {
	warnings := make([]string, 0)

	for i := range parts {
		part := &parts[i]
		if part.MaterialGrade == "" {
			continue
		}
		for j := range grades {
			if grades[j].Name != part.MaterialGrade {
				continue
			}
			if !grades[j].AppliesTo(part.PartType) {
				warnings = append(warnings,
					fmt.Sprintf("part %q: grade %s is not configured for %s",
						part.Label, part.MaterialGrade, part.PartType))
			}
			break
		}
	}

	return warnings
}
