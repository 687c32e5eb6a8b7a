package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxStatus represents a client's sales tax treatment
type TaxStatus int

const (
	Taxable TaxStatus = iota
	Resale
	Exempt
)

// String method for TaxStatus enum
func (t TaxStatus) String() string {
	switch t {
	case Taxable:
		return "taxable"
	case Resale:
		return "resale"
	case Exempt:
		return "exempt"
	default:
		return "unknown"
	}
}

// ParseTaxStatus parses a tax status from its configured string form
func ParseTaxStatus(s string) (TaxStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "taxable":
		return Taxable, nil
	case "resale":
		return Resale, nil
	case "exempt":
		return Exempt, nil
	default:
		return Taxable, fmt.Errorf("invalid tax status: %s (expected: taxable, resale, or exempt)", s)
	}
}

// Estimate represents a quote under construction: the parts being priced
// plus the client-level overrides that affect the totals. Rate overrides
// are percentages (9.75 = 9.75%), nil means fall back to the shop-wide
// defaults in TaxSettings.
type Estimate struct {
	ID             string
	Client         string
	TaxStatus      TaxStatus
	CustomTaxRate  *decimal.Decimal
	MaterialMarkup *decimal.Decimal
	LaborRate      *decimal.Decimal
	Parts          []Part
}
