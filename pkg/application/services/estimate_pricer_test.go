package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabshop/quoting/pkg/domain/entities"
	"github.com/fabshop/quoting/pkg/domain/services"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func testRules() *entities.RuleSet {
	return &entities.RuleSet{
		LaborMinimums: []entities.LaborMinimumRule{
			{
				PartType:  entities.PlateRoll,
				Label:     "plate minimum",
				SizeField: entities.SizeThickness,
				Minimum:   d("150"),
			},
		},
		RollLimits: []entities.RollLimitRule{
			{OD: d("2.375"), MaterialCategory: entities.Steel, MinDiameter: d("30"), Label: "2in pipe"},
		},
		MandrelDies: []entities.MandrelDie{
			{OD: d("2.375"), MinDiameter: d("12"), Label: "2in die"},
		},
		MaterialGrades: []entities.MaterialGrade{
			{Name: "A36", PartTypes: []entities.PartType{entities.PlateRoll}},
			{Name: "A53", PartTypes: []entities.PartType{entities.PipeRoll}},
		},
		WeldRates: entities.WeldRateTable{
			"A53":                   d("5.00"),
			entities.DefaultRateKey: d("4.00"),
		},
		Tax: entities.TaxSettings{
			DefaultTaxRate:        d("8.25"),
			DefaultLaborRate:      d("95.00"),
			DefaultMaterialMarkup: d("20"),
		},
	}
}

func TestPrice_FullScenario(t *testing.T) {
	laborRate := d("90")
	customTax := d("10")
	estimate := &entities.Estimate{
		ID:            "EST-100",
		Client:        "Acme Rail",
		TaxStatus:     entities.Taxable,
		CustomTaxRate: &customTax,
		LaborRate:     &laborRate,
		Parts: []entities.Part{
			{
				Label:        "plate",
				PartType:     entities.PlateRoll,
				Thickness:    d("0.25"),
				MaterialCost: d("100"),
				LaborCost:    d("30"),
				Quantity:     2,
			},
			{
				Label:        "bracket",
				PartType:     entities.OtherPart,
				MaterialCost: d("50"),
				LaborHours:   d("0.5"), // resolved at the 90/hr override
				Quantity:     1,
			},
		},
	}

	pricer := NewEstimatePricer(testRules())
	priced, err := pricer.Price(estimate)
	require.NoError(t, err)

	// Material: (100x2 + 50x1) x 1.20 markup
	assert.True(t, priced.MaterialSubtotal.Equal(d("300")),
		"material subtotal: %s", priced.MaterialSubtotal)

	// Labor: 30x2 + 0.5x90 = 105, floored to the 150 plate minimum
	assert.True(t, priced.Labor.TotalLabor.Equal(d("105")), "total labor: %s", priced.Labor.TotalLabor)
	assert.True(t, priced.Labor.EffectiveLabor.Equal(d("150")))
	assert.True(t, priced.Labor.MinimumApplied)
	assert.True(t, priced.LaborTotal.Equal(d("150")))

	// Subtotal 450, custom 10% tax, grand 495
	assert.True(t, priced.Subtotal.Equal(d("450")), "subtotal: %s", priced.Subtotal)
	assert.True(t, priced.TaxRate.Equal(d("10")))
	assert.True(t, priced.Tax.Equal(d("45")), "tax: %s", priced.Tax)
	assert.True(t, priced.GrandTotal.Equal(d("495")), "grand total: %s", priced.GrandTotal)
}

func TestPrice_ResaleZeroesTaxRegardlessOfRate(t *testing.T) {
	customTax := d("9.75")
	estimate := &entities.Estimate{
		ID:            "EST-101",
		TaxStatus:     entities.Resale,
		CustomTaxRate: &customTax,
		Parts: []entities.Part{
			{Label: "plate", PartType: entities.PlateRoll, Thickness: d("0.25"),
				MaterialCost: d("100"), LaborCost: d("200"), Quantity: 1},
		},
	}

	pricer := NewEstimatePricer(testRules())
	priced, err := pricer.Price(estimate)
	require.NoError(t, err)

	assert.True(t, priced.Tax.IsZero(), "resale client must pay zero tax, got %s", priced.Tax)
	assert.True(t, priced.TaxRate.IsZero())
	assert.True(t, priced.GrandTotal.Equal(priced.Subtotal))
}

func TestPrice_DefaultTaxRateWhenNoOverride(t *testing.T) {
	estimate := &entities.Estimate{
		ID:        "EST-102",
		TaxStatus: entities.Taxable,
		Parts: []entities.Part{
			{Label: "bracket", PartType: entities.OtherPart, MaterialCost: d("100"),
				LaborCost: d("100"), Quantity: 1},
		},
	}

	pricer := NewEstimatePricer(testRules())
	priced, err := pricer.Price(estimate)
	require.NoError(t, err)

	// (100 x 1.2) + 100 = 220, taxed at the shop default 8.25%
	assert.True(t, priced.TaxRate.Equal(d("8.25")))
	assert.True(t, priced.Tax.Equal(d("18.15")), "tax: %s", priced.Tax)
	assert.True(t, priced.GrandTotal.Equal(d("238.15")), "grand total: %s", priced.GrandTotal)
}

func TestPrice_WeldChargesAreAdditive(t *testing.T) {
	estimate := &entities.Estimate{
		ID:        "EST-103",
		TaxStatus: entities.Exempt,
		Parts: []entities.Part{
			{
				Label:         "seamed plate",
				PartType:      entities.PlateRoll,
				MaterialGrade: "A53",
				Thickness:     d("0.1875"),
				SeamLength:    d("50"),
				LaborCost:     d("10"),
				Quantity:      2,
			},
		},
	}

	pricer := NewEstimatePricer(testRules())
	priced, err := pricer.Price(estimate)
	require.NoError(t, err)

	// Per unit: ceil(0.1875/0.125)=2 passes x ceil(50/12)=5 ft x 5.00 = 50
	assert.True(t, priced.WeldTotal.Equal(d("100")), "weld total: %s", priced.WeldTotal)

	// Weld never feeds the minimum comparison: labor 20 is still below the
	// 150 floor even though weld charges push the line past it
	assert.True(t, priced.Labor.TotalLabor.Equal(d("20")))
	assert.True(t, priced.Labor.EffectiveLabor.Equal(d("150")))
	assert.True(t, priced.LaborTotal.Equal(d("250")), "labor total: %s", priced.LaborTotal)
}

func TestPrice_MissingWeldRateFails(t *testing.T) {
	rules := testRules()
	rules.WeldRates = entities.WeldRateTable{"A36": d("5.00")} // no default

	estimate := &entities.Estimate{
		ID:        "EST-104",
		TaxStatus: entities.Taxable,
		Parts: []entities.Part{
			{Label: "mystery seam", PartType: entities.OtherPart, MaterialGrade: "titanium",
				Thickness: d("0.25"), SeamLength: d("24"), LaborCost: d("10"), Quantity: 1},
		},
	}

	pricer := NewEstimatePricer(rules)
	_, err := pricer.Price(estimate)
	require.Error(t, err)

	var missing *services.MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "titanium", missing.Grade)
	assert.Contains(t, err.Error(), "mystery seam")
}

func TestPrice_FeasibilityWarnings(t *testing.T) {
	estimate := &entities.Estimate{
		ID:        "EST-105",
		TaxStatus: entities.Exempt,
		Parts: []entities.Part{
			{
				Label:            "tight bend",
				PartType:         entities.PipeRoll,
				MaterialGrade:    "A53",
				MaterialCategory: entities.Steel,
				OuterDiameter:    d("2.375"),
				BendDiameter:     d("10"), // below the 12 die limit
				LaborCost:        d("50"),
				Quantity:         1,
			},
		},
	}

	pricer := NewEstimatePricer(testRules())
	priced, err := pricer.Price(estimate)
	require.NoError(t, err)

	require.Len(t, priced.Lines, 1)
	require.NotNil(t, priced.Lines[0].Feasibility)
	assert.Equal(t, services.Infeasible, priced.Lines[0].Feasibility.Status)

	require.NotEmpty(t, priced.Warnings)
	assert.Contains(t, priced.Warnings[0], "smallest achievable is 12")
}

func TestPrice_GradeApplicabilityWarning(t *testing.T) {
	estimate := &entities.Estimate{
		ID:        "EST-106",
		TaxStatus: entities.Exempt,
		Parts: []entities.Part{
			// A36 is configured for plate, not pipe
			{Label: "wrong grade", PartType: entities.PipeRoll, MaterialGrade: "A36",
				LaborCost: d("50"), Quantity: 1},
		},
	}

	pricer := NewEstimatePricer(testRules())
	priced, err := pricer.Price(estimate)
	require.NoError(t, err)

	require.NotEmpty(t, priced.Warnings)
	assert.Contains(t, priced.Warnings[0], "not configured for pipe_roll")
}

func TestPrice_IdempotentAndNonMutating(t *testing.T) {
	laborRate := d("90")
	estimate := &entities.Estimate{
		ID:        "EST-107",
		TaxStatus: entities.Taxable,
		LaborRate: &laborRate,
		Parts: []entities.Part{
			{Label: "plate", PartType: entities.PlateRoll, Thickness: d("0.25"),
				MaterialCost: d("100"), LaborHours: d("2"), Quantity: 2},
		},
	}

	pricer := NewEstimatePricer(testRules())

	first, err := pricer.Price(estimate)
	require.NoError(t, err)
	second, err := pricer.Price(estimate)
	require.NoError(t, err)

	assert.Equal(t, first, second, "pricing must be idempotent for identical inputs")

	// The input estimate keeps its hours-only part; resolution happens on a copy
	assert.True(t, estimate.Parts[0].LaborCost.IsZero(),
		"pricing must not write resolved labor cost back into the input")
}
