package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/application/dto"
	"github.com/fabshop/quoting/pkg/domain/entities"
	"github.com/fabshop/quoting/pkg/domain/services"
)

var oneHundred = decimal.NewFromInt(100)

// EstimatePricer turns an estimate and a rule set snapshot into a priced
// quote. It is pure: the same estimate against the same rule set always
// produces the same output, and the input estimate is never mutated.
type EstimatePricer struct {
	rules       *entities.RuleSet
	feasibility *services.FeasibilityService
	laborMin    *services.LaborMinimumService
	weld        *services.WeldCalculator
	validator   *services.RuleValidator
}

// NewEstimatePricer creates a pricer over a rule set snapshot. The snapshot
// is held for the life of the pricer; reloading settings means building a
// new pricer.
func NewEstimatePricer(rules *entities.RuleSet) *EstimatePricer {
	return &EstimatePricer{
		rules:       rules,
		feasibility: services.NewFeasibilityService(rules.RollLimits, rules.MandrelDies),
		laborMin:    services.NewLaborMinimumService(rules.LaborMinimums),
		weld:        services.NewWeldCalculator(rules.WeldRates),
		validator:   services.NewRuleValidator(),
	}
}

// Price computes the complete quote for an estimate:
//
//  1. Per-part labor cost, derived from labor hours where no cost is given
//  2. Weld charges per seam-bearing part
//  3. The estimate-level labor minimum over summed labor
//  4. Material subtotal with percent markup
//  5. Tax by client status, then the grand total
//
// Weld charges are additive line items layered on top of the effective
// labor; they never feed into the minimum comparison. Returns an error
// only for conditions that make the quote unpriceable, currently a weld
// on a grade with no configured or default rate.
func (p *EstimatePricer) Price(estimate *entities.Estimate) (*dto.PricedEstimate, error) {
	laborRate := p.rules.Tax.DefaultLaborRate
	if estimate.LaborRate != nil {
		laborRate = *estimate.LaborRate
	}

	markup := p.rules.Tax.DefaultMaterialMarkup
	if estimate.MaterialMarkup != nil {
		markup = *estimate.MaterialMarkup
	}

	// Work on a copy so labor-hours resolution never mutates the input
	parts := make([]entities.Part, len(estimate.Parts))
	copy(parts, estimate.Parts)
	for i := range parts {
		if parts[i].LaborCost.IsZero() && parts[i].LaborHours.IsPositive() {
			parts[i].LaborCost = parts[i].LaborHours.Mul(laborRate)
		}
	}

	result := &dto.PricedEstimate{
		EstimateID:     estimate.ID,
		Client:         estimate.Client,
		Lines:          make([]dto.PricedLine, 0, len(parts)),
		MaterialMarkup: markup,
		TaxStatus:      estimate.TaxStatus,
		WeldTotal:      decimal.Zero,
		Warnings:       make([]string, 0),
	}

	materialBase := decimal.Zero

	for i := range parts {
		part := &parts[i]
		qty := decimal.NewFromInt(part.Quantity)

		line := dto.PricedLine{
			Label:            part.Label,
			PartType:         part.PartType,
			Quantity:         part.Quantity,
			UnitMaterialCost: part.MaterialCost,
			MaterialExtended: part.MaterialCost.Mul(qty),
			UnitLaborCost:    part.LaborCost,
			LaborExtended:    part.LaborCost.Mul(qty),
			WeldCost:         decimal.Zero,
		}

		if part.SeamLength.IsPositive() {
			unitWeld, err := p.weld.Cost(part.Thickness, part.SeamLength, part.MaterialGrade)
			if err != nil {
				return nil, fmt.Errorf("part %q: %w", part.Label, err)
			}
			line.WeldCost = unitWeld.Mul(qty)
			result.WeldTotal = result.WeldTotal.Add(line.WeldCost)
		}

		if part.BendDiameter.IsPositive() && part.OuterDiameter.IsPositive() {
			feas := p.feasibility.Evaluate(part.OuterDiameter, part.MaterialCategory, part.BendDiameter)
			line.Feasibility = &feas
			if feas.Status == services.Infeasible {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("part %q: requested %s diameter is below the shop limit; smallest achievable is %s",
						part.Label, part.BendDiameter, feas.SmallestAchievable))
			}
		}

		materialBase = materialBase.Add(line.MaterialExtended)
		result.Lines = append(result.Lines, line)
	}

	result.Warnings = append(result.Warnings,
		p.validator.ValidatePartGrades(parts, p.rules.MaterialGrades)...)

	result.Labor = p.laborMin.Resolve(parts)
	result.LaborTotal = result.Labor.EffectiveLabor.Add(result.WeldTotal)

	markupFactor := decimal.NewFromInt(1).Add(markup.Div(oneHundred))
	result.MaterialSubtotal = materialBase.Mul(markupFactor)

	result.Subtotal = result.MaterialSubtotal.Add(result.LaborTotal)

	// Resale and exempt clients pay no tax regardless of any configured rate
	result.TaxRate = decimal.Zero
	result.Tax = decimal.Zero
	if estimate.TaxStatus == entities.Taxable {
		result.TaxRate = p.rules.Tax.DefaultTaxRate
		if estimate.CustomTaxRate != nil {
			result.TaxRate = *estimate.CustomTaxRate
		}
		result.Tax = result.Subtotal.Mul(result.TaxRate.Div(oneHundred))
	}

	result.GrandTotal = result.Subtotal.Add(result.Tax)

	return result, nil
}
