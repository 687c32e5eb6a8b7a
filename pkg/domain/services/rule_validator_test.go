package services

import (
	"strings"
	"testing"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

func TestRuleValidator_CleanRuleSetPasses(t *testing.T) {
	validator := NewRuleValidator()

	rs := &entities.RuleSet{
		LaborMinimums: []entities.LaborMinimumRule{
			{PartType: entities.PlateRoll, Label: "plate", SizeField: entities.SizeThickness, Minimum: d("100")},
		},
		RollLimits: []entities.RollLimitRule{
			{OD: d("2.375"), MaterialCategory: entities.Steel, MinDiameter: d("30"), Label: "pipe"},
		},
		MandrelDies: []entities.MandrelDie{
			{OD: d("2.375"), MinDiameter: d("12"), Label: "die"},
		},
		MaterialGrades: []entities.MaterialGrade{
			{Name: "A36", PartTypes: []entities.PartType{entities.PlateRoll}},
		},
		WeldRates: entities.WeldRateTable{entities.DefaultRateKey: d("4.00")},
	}

	result := validator.ValidateRuleSet(rs)
	if !result.Valid() {
		t.Errorf("expected clean rule set to validate, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got: %v", result.Warnings)
	}
}

func TestRuleValidator_FlagsBadRules(t *testing.T) {
	validator := NewRuleValidator()

	rs := &entities.RuleSet{
		LaborMinimums: []entities.LaborMinimumRule{
			{PartType: entities.PlateRoll, Label: "inverted", SizeField: entities.SizeThickness,
				MinSize: dp("1"), MaxSize: dp("0.5"), Minimum: d("100")},
		},
		RollLimits: []entities.RollLimitRule{
			{OD: d("0"), MaterialCategory: entities.Steel, MinDiameter: d("30"), Label: "zero od"},
		},
		MandrelDies: []entities.MandrelDie{
			{OD: d("2.375"), MinDiameter: d("12"), Label: "die a"},
			{OD: d("2.375"), MinDiameter: d("12"), Label: "die b"},
		},
		MaterialGrades: []entities.MaterialGrade{
			{Name: "A36"},
			{Name: "A36", PartTypes: []entities.PartType{entities.PlateRoll}},
		},
		WeldRates: entities.WeldRateTable{"A36": d("5.00")}, // no default
	}

	result := validator.ValidateRuleSet(rs)
	if result.Valid() {
		t.Fatal("expected validation errors")
	}

	wantErrors := []string{"non-positive OD", "duplicate material grade"}
	for _, want := range wantErrors {
		if !containsSubstring(result.Errors, want) {
			t.Errorf("expected an error containing %q, got %v", want, result.Errors)
		}
	}

	wantWarnings := []string{"inverted bounds", "duplicate OD", "no default entry", "not configured for any part type"}
	for _, want := range wantWarnings {
		if !containsSubstring(result.Warnings, want) {
			t.Errorf("expected a warning containing %q, got %v", want, result.Warnings)
		}
	}
}

func TestRuleValidator_PartGradeWarnings(t *testing.T) {
	validator := NewRuleValidator()

	grades := []entities.MaterialGrade{
		{Name: "A36", PartTypes: []entities.PartType{entities.PlateRoll}},
	}

	parts := []entities.Part{
		{Label: "good", PartType: entities.PlateRoll, MaterialGrade: "A36", Quantity: 1},
		{Label: "mismatched", PartType: entities.PipeRoll, MaterialGrade: "A36", Quantity: 1},
		{Label: "unknown grade", PartType: entities.PipeRoll, MaterialGrade: "A53", Quantity: 1},
	}

	warnings := validator.ValidatePartGrades(parts, grades)
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "mismatched") {
		t.Errorf("expected warning about the mismatched part, got %s", warnings[0])
	}
}

func containsSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
