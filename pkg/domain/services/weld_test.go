package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

func testWeldRates() entities.WeldRateTable {
	return entities.WeldRateTable{
		"A36":                   d("5.00"),
		"304SS":                 d("8.00"),
		entities.DefaultRateKey: d("4.00"),
	}
}

func TestWeldCost_WorkedExamples(t *testing.T) {
	calc := NewWeldCalculator(testWeldRates())

	tests := []struct {
		name       string
		thickness  string
		seamLength string
		grade      string
		expected   string
	}{
		// 0.1875/0.125 = 1.5 -> 2 passes; 50/12 = 4.1667 -> 5 ft; 2 x 5 x 5.00
		{"three_sixteenths_50in", "0.1875", "50", "A36", "50.00"},
		// 0.375/0.125 = 3 exactly; 12/12 = 1 exactly; 3 x 1 x 4.00
		{"three_eighths_12in_default_rate", "0.375", "12", "unknown-grade", "12.00"},
		{"stainless_rate", "0.125", "12", "304SS", "8.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := calc.Cost(d(tt.thickness), d(tt.seamLength), tt.grade)
			if err != nil {
				t.Fatalf("Cost failed: %v", err)
			}
			if !cost.Equal(d(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, cost)
			}
		})
	}
}

func TestWeldCost_BothFactorsRoundUp(t *testing.T) {
	calc := NewWeldCalculator(testWeldRates())

	// A hair over a pass boundary and a foot boundary bills a full extra unit
	cost, err := calc.Cost(d("0.1251"), d("12.1"), "A36")
	if err != nil {
		t.Fatalf("Cost failed: %v", err)
	}
	// 2 passes x 2 ft x 5.00
	if !cost.Equal(d("20.00")) {
		t.Errorf("expected 20.00, got %s", cost)
	}
}

func TestWeldCost_MissingRateError(t *testing.T) {
	calc := NewWeldCalculator(entities.WeldRateTable{
		"A36": d("5.00"),
	})

	_, err := calc.Cost(d("0.25"), d("24"), "titanium")
	if err == nil {
		t.Fatal("expected an error for an unknown grade with no default rate")
	}

	var missing *MissingRateError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRateError, got %T: %v", err, err)
	}
	if missing.Grade != "titanium" {
		t.Errorf("expected grade titanium in error, got %s", missing.Grade)
	}
}

func TestWeldCost_Monotonicity(t *testing.T) {
	calc := NewWeldCalculator(testWeldRates())

	// Cost never decreases as thickness or seam length grows
	thicknesses := []string{"0.0625", "0.125", "0.1875", "0.25", "0.375", "0.5"}
	lengths := []string{"6", "12", "13", "24", "50", "100"}

	prev := decimal.Zero
	for _, th := range thicknesses {
		cost, err := calc.Cost(d(th), d("50"), "A36")
		if err != nil {
			t.Fatalf("Cost failed: %v", err)
		}
		if cost.LessThan(prev) {
			t.Errorf("cost decreased from %s to %s at thickness %s", prev, cost, th)
		}
		prev = cost
	}

	prev = decimal.Zero
	for _, length := range lengths {
		cost, err := calc.Cost(d("0.25"), d(length), "A36")
		if err != nil {
			t.Fatalf("Cost failed: %v", err)
		}
		if cost.LessThan(prev) {
			t.Errorf("cost decreased from %s to %s at seam length %s", prev, cost, length)
		}
		prev = cost
	}
}
