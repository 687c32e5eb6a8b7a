package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

// MissingRateError indicates a weld cost could not be computed because the
// part's grade has no configured rate and the table has no default entry.
// It is fatal to the calculation; welds are never silently billed at zero.
type MissingRateError struct {
	Grade string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no weld rate configured for grade %q and no default rate set", e.Grade)
}

var (
	passThickness = decimal.New(125, -3) // one weld pass per 1/8in of seam thickness
	inchesPerFoot = decimal.NewFromInt(12)
)

// WeldCalculator computes fabrication labor cost for welded seams
type WeldCalculator struct {
	rates entities.WeldRateTable
}

// NewWeldCalculator creates a weld calculator over a rate table snapshot
func NewWeldCalculator(rates entities.WeldRateTable) *WeldCalculator {
	return &WeldCalculator{rates: rates}
}

// Cost computes the weld charge for a seam:
//
//	passes = ceil(thickness / 0.125)
//	lengthFeet = ceil(seamLength / 12)
//	cost = passes x lengthFeet x rate
//
// Both factors round up, so a 50in seam bills as 5 feet, not 4.17. The rate
// comes from the part's grade, falling back to the table's default entry.
func (c *WeldCalculator) Cost(thickness, seamLength decimal.Decimal, grade string) (decimal.Decimal, error) {
	rate, ok := c.rates[grade]
	if !ok {
		rate, ok = c.rates[entities.DefaultRateKey]
		if !ok {
			return decimal.Zero, &MissingRateError{Grade: grade}
		}
	}

	passes := thickness.Div(passThickness).Ceil()
	lengthFeet := seamLength.Div(inchesPerFoot).Ceil()

	return passes.Mul(lengthFeet).Mul(rate), nil
}
