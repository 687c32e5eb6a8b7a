package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/application/services"
	"github.com/fabshop/quoting/pkg/domain/entities"
	"github.com/fabshop/quoting/pkg/interfaces/cli/output"
)

func main() {
	rules := buildShopRules()

	customRate := decimal.RequireFromString("9.75")
	estimate := &entities.Estimate{
		ID:            "EST-2031",
		Client:        "Harbor Marine Works",
		TaxStatus:     entities.Taxable,
		CustomTaxRate: &customRate,
		Parts: []entities.Part{
			{
				Label:            "Handrail segment",
				PartType:         entities.PipeRoll,
				MaterialGrade:    "A53",
				MaterialCategory: entities.Steel,
				OuterDiameter:    decimal.RequireFromString("2.375"),
				BendDiameter:     decimal.RequireFromString("36"),
				Thickness:        decimal.RequireFromString("0.154"),
				SeamLength:       decimal.RequireFromString("50"),
				MaterialCost:     decimal.RequireFromString("42.10"),
				LaborHours:       decimal.RequireFromString("1.5"),
				Quantity:         4,
			},
			{
				Label:            "Rolled plate shell",
				PartType:         entities.PlateRoll,
				MaterialGrade:    "A36",
				MaterialCategory: entities.Steel,
				Thickness:        decimal.RequireFromString("0.375"),
				Width:            decimal.RequireFromString("48"),
				MaterialCost:     decimal.RequireFromString("310.00"),
				LaborCost:        decimal.RequireFromString("95.00"),
				Quantity:         1,
			},
		},
	}

	fmt.Printf("Pricing estimate %s for %s...\n\n", estimate.ID, estimate.Client)

	pricer := services.NewEstimatePricer(rules)
	priced, err := pricer.Price(estimate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pricing failed: %v\n", err)
		os.Exit(1)
	}

	output.RenderText(os.Stdout, priced)
}

func buildShopRules() *entities.RuleSet {
	minPlate := decimal.RequireFromString("0.25")

	return &entities.RuleSet{
		LaborMinimums: []entities.LaborMinimumRule{
			{
				PartType:  entities.PlateRoll,
				Label:     "Heavy plate roll minimum",
				SizeField: entities.SizeThickness,
				MinSize:   &minPlate,
				Minimum:   decimal.RequireFromString("450.00"),
			},
			{
				PartType:  entities.PipeRoll,
				Label:     "Pipe roll minimum",
				SizeField: entities.SizeOuterDiameter,
				Minimum:   decimal.RequireFromString("150.00"),
			},
		},
		RollLimits: []entities.RollLimitRule{
			{
				OD:               decimal.RequireFromString("2.375"),
				MaterialCategory: entities.Steel,
				MinDiameter:      decimal.RequireFromString("30"),
				Label:            "2in sch 40 pipe",
			},
		},
		MandrelDies: []entities.MandrelDie{
			{
				OD:            decimal.RequireFromString("2.375"),
				WallThickness: "0.154",
				MinDiameter:   decimal.RequireFromString("12"),
				Label:         "2in pipe die",
			},
		},
		MaterialGrades: []entities.MaterialGrade{
			{
				Name:          "A53",
				PartTypes:     []entities.PartType{entities.PipeRoll},
				YieldStrength: "35 ksi",
			},
			{
				Name:          "A36",
				PartTypes:     []entities.PartType{entities.PlateRoll, entities.FlatBar},
				YieldStrength: "36 ksi",
			},
		},
		WeldRates: entities.WeldRateTable{
			"A53":                   decimal.RequireFromString("5.00"),
			entities.DefaultRateKey: decimal.RequireFromString("4.50"),
		},
		Tax: entities.TaxSettings{
			DefaultTaxRate:        decimal.RequireFromString("8.25"),
			DefaultLaborRate:      decimal.RequireFromString("95.00"),
			DefaultMaterialMarkup: decimal.RequireFromString("20"),
		},
	}
}
