package services

import (
	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

// LaborMinimumResult describes the labor floor applied to an estimate
type LaborMinimumResult struct {
	TotalLabor     decimal.Decimal // sum of laborCost x quantity across all parts
	EffectiveLabor decimal.Decimal // TotalLabor, or the rule minimum when higher
	MinimumApplied bool
	SelectedRule   *entities.LaborMinimumRule // nil when no rule matched any part
}

// LaborMinimumService resolves the minimum labor charge for an estimate.
//
// The minimum is an estimate-level substitution, not a per-part one: the
// single highest minimum among all rules matched by any part is compared
// against the summed labor of the whole estimate. A high-minimum rule
// triggered by one small part therefore floors the entire estimate's labor.
type LaborMinimumService struct {
	rules []entities.LaborMinimumRule
}

// NewLaborMinimumService creates a labor minimum service over a rule snapshot
func NewLaborMinimumService(rules []entities.LaborMinimumRule) *LaborMinimumService {
	return &LaborMinimumService{rules: rules}
}

// Resolve finds the highest applicable labor minimum across all parts and
// substitutes it for the summed labor when the sum falls short. Ties on
// the minimum amount go to the rule earliest in the table's order.
func (s *LaborMinimumService) Resolve(parts []entities.Part) LaborMinimumResult {
	result := LaborMinimumResult{
		TotalLabor: decimal.Zero,
	}

	for i := range parts {
		qty := decimal.NewFromInt(parts[i].Quantity)
		result.TotalLabor = result.TotalLabor.Add(parts[i].LaborCost.Mul(qty))
	}

	// Rules are scanned in table order so that the first of two equal
	// minimums wins; only a strictly higher minimum displaces a selection.
	for i := range s.rules {
		rule := &s.rules[i]
		if !anyPartMatches(rule, parts) {
			continue
		}
		if result.SelectedRule == nil || rule.Minimum.GreaterThan(result.SelectedRule.Minimum) {
			result.SelectedRule = rule
		}
	}

	result.EffectiveLabor = result.TotalLabor
	if result.SelectedRule != nil && result.TotalLabor.LessThan(result.SelectedRule.Minimum) {
		result.EffectiveLabor = result.SelectedRule.Minimum
		result.MinimumApplied = true
	}

	return result
}

func anyPartMatches(rule *entities.LaborMinimumRule, parts []entities.Part) bool {
	for i := range parts {
		if ruleMatchesPart(rule, &parts[i]) {
			return true
		}
	}
	return false
}

// ruleMatchesPart checks part type, the size bound selected by the rule's
// size field, and the width bound when the rule carries one. Bounds are
// inclusive; a nil bound is unbounded. Inverted bounds never match.
func ruleMatchesPart(rule *entities.LaborMinimumRule, part *entities.Part) bool {
	if !rule.BoundsValid() {
		return false
	}
	if rule.PartType != part.PartType {
		return false
	}

	size := part.SizeAttribute(rule.SizeField)
	if !withinBounds(size, rule.MinSize, rule.MaxSize) {
		return false
	}

	if rule.MinWidth != nil || rule.MaxWidth != nil {
		if !withinBounds(part.Width, rule.MinWidth, rule.MaxWidth) {
			return false
		}
	}

	return true
}

func withinBounds(value decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && value.LessThan(*min) {
		return false
	}
	if max != nil && value.GreaterThan(*max) {
		return false
	}
	return true
}
