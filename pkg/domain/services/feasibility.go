package services

import (
	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

// FeasibilityStatus represents the outcome of a roll/bend feasibility check
type FeasibilityStatus int

const (
	Feasible FeasibilityStatus = iota
	FeasibleWithMandrel
	Infeasible
)

// String method for FeasibilityStatus enum
func (s FeasibilityStatus) String() string {
	switch s {
	case Feasible:
		return "Feasible"
	case FeasibleWithMandrel:
		return "FeasibleWithMandrel"
	case Infeasible:
		return "Infeasible"
	default:
		return "Unknown"
	}
}

// FeasibilityResult describes whether the shop can produce a requested bend
// and, when it cannot, the smallest diameter it could achieve instead.
type FeasibilityResult struct {
	Status             FeasibilityStatus
	MinDiameter        decimal.Decimal // roll limit applied to the request
	Die                *entities.MandrelDie
	SmallestAchievable decimal.Decimal // set when Status is Infeasible
	DefaultApplied     bool            // no roll limit rule matched; default multiplier used
	MatchedRule        *entities.RollLimitRule
}

var (
	defaultSteelMultiplier    = decimal.NewFromInt(8)
	defaultAluminumMultiplier = decimal.NewFromInt(12)
)

// FeasibilityService determines whether the shop can roll or bend a part
// to a requested centerline diameter, consulting the roll limit table and
// falling back to mandrel tooling when the standard limit is too large.
type FeasibilityService struct {
	rollLimits []entities.RollLimitRule
	dies       []entities.MandrelDie
}

// NewFeasibilityService creates a feasibility service over a rule snapshot
func NewFeasibilityService(rollLimits []entities.RollLimitRule, dies []entities.MandrelDie) *FeasibilityService {
	return &FeasibilityService{
		rollLimits: rollLimits,
		dies:       dies,
	}
}

// canonOD rounds an outer diameter to 3 decimal places before comparison.
// Rule ODs come from hand-entered configuration; canonicalizing both sides
// avoids silent lookup misses from representation drift while keeping the
// lookup an exact match (2.001 still does not match 2.000).
func canonOD(od decimal.Decimal) decimal.Decimal {
	return od.Round(3)
}

// Evaluate checks whether a part with the given OD and material category
// can be bent to the requested centerline diameter.
//
// The roll limit is taken from the rule whose OD matches exactly, with an
// exact material category match preferred over an "all" rule. When no rule
// matches, a default limit of 8x OD (steel/stainless) or 12x OD (aluminum)
// applies. Requests below the limit fall back to mandrel tooling; requests
// below any die's capability are infeasible and the result names the
// smallest achievable diameter so the caller can surface it.
func (s *FeasibilityService) Evaluate(
	od decimal.Decimal,
	category entities.MaterialCategory,
	requestedDiameter decimal.Decimal,
) FeasibilityResult {
	if category == entities.AllMaterials {
		// Parts carry a concrete material family; "all" only appears on rules
		category = entities.Steel
	}

	result := FeasibilityResult{}
	partOD := canonOD(od)

	// Find the governing roll limit: exact category beats "all"
	var exact, wildcard *entities.RollLimitRule
	for i := range s.rollLimits {
		rule := &s.rollLimits[i]
		if !canonOD(rule.OD).Equal(partOD) {
			continue
		}
		if rule.MaterialCategory == category && exact == nil {
			exact = rule
		} else if rule.MaterialCategory == entities.AllMaterials && wildcard == nil {
			wildcard = rule
		}
	}

	switch {
	case exact != nil:
		result.MatchedRule = exact
		result.MinDiameter = exact.MinDiameter
	case wildcard != nil:
		result.MatchedRule = wildcard
		result.MinDiameter = wildcard.MinDiameter
	default:
		result.DefaultApplied = true
		if category == entities.Aluminum {
			result.MinDiameter = od.Mul(defaultAluminumMultiplier)
		} else {
			result.MinDiameter = od.Mul(defaultSteelMultiplier)
		}
	}

	if requestedDiameter.GreaterThanOrEqual(result.MinDiameter) {
		result.Status = Feasible
		return result
	}

	// Below the roll limit: look for mandrel tooling on this OD
	bestDie := s.bestDieFor(partOD)
	if bestDie != nil && bestDie.Fits(requestedDiameter) {
		result.Status = FeasibleWithMandrel
		result.Die = bestDie
		return result
	}

	result.Status = Infeasible
	result.SmallestAchievable = result.MinDiameter
	if bestDie != nil && bestDie.MinDiameter.LessThan(result.SmallestAchievable) {
		result.SmallestAchievable = bestDie.MinDiameter
	}
	return result
}

// bestDieFor returns the matching-OD die with the smallest minimum diameter
func (s *FeasibilityService) bestDieFor(partOD decimal.Decimal) *entities.MandrelDie {
	var best *entities.MandrelDie
	for i := range s.dies {
		die := &s.dies[i]
		if !canonOD(die.OD).Equal(partOD) {
			continue
		}
		if best == nil || die.MinDiameter.LessThan(best.MinDiameter) {
			best = die
		}
	}
	return best
}
