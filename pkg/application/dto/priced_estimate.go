package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/domain/entities"
	"github.com/fabshop/quoting/pkg/domain/services"
)

// PricedLine contains the derived values for a single part on the estimate.
// Extended amounts are unit amounts multiplied by quantity; all values are
// full precision, rounding happens at render/persist time only.
type PricedLine struct {
	Label            string
	PartType         entities.PartType
	Quantity         int64
	UnitMaterialCost decimal.Decimal
	MaterialExtended decimal.Decimal // before markup
	UnitLaborCost    decimal.Decimal
	LaborExtended    decimal.Decimal
	WeldCost         decimal.Decimal // total for the line's quantity
	Feasibility      *services.FeasibilityResult
}

// PricedEstimate contains the complete output of pricing an estimate
type PricedEstimate struct {
	EstimateID string
	Client     string
	Lines      []PricedLine

	MaterialMarkup   decimal.Decimal // percent applied
	MaterialSubtotal decimal.Decimal // marked up

	Labor     services.LaborMinimumResult
	WeldTotal decimal.Decimal
	// LaborTotal is the effective (minimum-floored) labor plus weld charges
	LaborTotal decimal.Decimal

	Subtotal   decimal.Decimal
	TaxStatus  entities.TaxStatus
	TaxRate    decimal.Decimal // percent actually applied; zero for resale/exempt
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal

	Warnings []string
}
