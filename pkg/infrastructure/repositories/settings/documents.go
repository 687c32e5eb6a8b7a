package settings

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

// Settings documents cross the wire as JSON with all monetary and size
// values as strings, never binary floats, so rule values survive being
// round-tripped through the admin screens. Each document carries its
// version and last-modified timestamp alongside its entries.

type documentEnvelope struct {
	Version    int64  `json:"version"`
	ModifiedAt string `json:"modifiedAt"`
}

type laborMinimumJSON struct {
	PartType  string  `json:"partType"`
	Label     string  `json:"label"`
	SizeField string  `json:"sizeField"`
	MinSize   *string `json:"minSize,omitempty"`
	MaxSize   *string `json:"maxSize,omitempty"`
	MinWidth  *string `json:"minWidth,omitempty"`
	MaxWidth  *string `json:"maxWidth,omitempty"`
	Minimum   string  `json:"minimum"`
}

type laborMinimumsDoc struct {
	documentEnvelope
	Rules []laborMinimumJSON `json:"rules"`
}

type rollLimitJSON struct {
	OD               string `json:"od"`
	MaterialCategory string `json:"materialCategory"`
	MinDiameter      string `json:"minDiameter"`
	Label            string `json:"label"`
}

type rollLimitsDoc struct {
	documentEnvelope
	Rules []rollLimitJSON `json:"rules"`
}

type mandrelDieJSON struct {
	OD            string `json:"od"`
	WallThickness string `json:"wallThickness"`
	MinDiameter   string `json:"minDiameter"`
	Label         string `json:"label"`
	Notes         string `json:"notes,omitempty"`
}

type mandrelDiesDoc struct {
	documentEnvelope
	Dies []mandrelDieJSON `json:"dies"`
}

type materialGradeJSON struct {
	Name            string   `json:"name"`
	PartTypes       []string `json:"partTypes"`
	YieldStrength   string   `json:"yieldStrength,omitempty"`
	TensileStrength string   `json:"tensileStrength,omitempty"`
}

type materialGradesDoc struct {
	documentEnvelope
	Grades []materialGradeJSON `json:"grades"`
}

type weldRatesDoc struct {
	documentEnvelope
	Rates map[string]string `json:"rates"`
}

type taxSettingsDoc struct {
	documentEnvelope
	DefaultTaxRate        string `json:"defaultTaxRate"`
	DefaultLaborRate      string `json:"defaultLaborRate"`
	DefaultMaterialMarkup string `json:"defaultMaterialMarkup"`
}

func (e *documentEnvelope) info(name string) (entities.DocumentInfo, error) {
	info := entities.DocumentInfo{Name: name, Version: e.Version}
	if e.ModifiedAt != "" {
		modified, err := time.Parse(time.RFC3339, e.ModifiedAt)
		if err != nil {
			return info, fmt.Errorf("invalid modifiedAt %q (expected RFC 3339)", e.ModifiedAt)
		}
		info.ModifiedAt = modified
	}
	return info, nil
}

// ParseLaborMinimums parses a labor_minimums document
func ParseLaborMinimums(data []byte) ([]entities.LaborMinimumRule, entities.DocumentInfo, error) {
	var doc laborMinimumsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, entities.DocumentInfo{}, fmt.Errorf("failed to parse labor minimums: %w", err)
	}

	info, err := doc.info(entities.DocLaborMinimums)
	if err != nil {
		return nil, info, err
	}

	rules := make([]entities.LaborMinimumRule, 0, len(doc.Rules))
	for i, raw := range doc.Rules {
		rule, err := parseLaborMinimum(raw)
		if err != nil {
			return nil, info, fmt.Errorf("labor minimum rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}

	return rules, info, nil
}

func parseLaborMinimum(raw laborMinimumJSON) (entities.LaborMinimumRule, error) {
	partType, err := entities.ParsePartType(raw.PartType)
	if err != nil {
		return entities.LaborMinimumRule{}, err
	}

	sizeField, err := entities.ParseSizeField(raw.SizeField)
	if err != nil {
		return entities.LaborMinimumRule{}, err
	}

	minimum, err := parseDecimal("minimum", raw.Minimum)
	if err != nil {
		return entities.LaborMinimumRule{}, err
	}

	rule := entities.LaborMinimumRule{
		PartType:  partType,
		Label:     raw.Label,
		SizeField: sizeField,
		Minimum:   minimum,
	}

	if rule.MinSize, err = parseOptionalDecimal("minSize", raw.MinSize); err != nil {
		return entities.LaborMinimumRule{}, err
	}
	if rule.MaxSize, err = parseOptionalDecimal("maxSize", raw.MaxSize); err != nil {
		return entities.LaborMinimumRule{}, err
	}
	if rule.MinWidth, err = parseOptionalDecimal("minWidth", raw.MinWidth); err != nil {
		return entities.LaborMinimumRule{}, err
	}
	if rule.MaxWidth, err = parseOptionalDecimal("maxWidth", raw.MaxWidth); err != nil {
		return entities.LaborMinimumRule{}, err
	}

	return rule, nil
}

// ParseRollLimits parses a roll_limits document
func ParseRollLimits(data []byte) ([]entities.RollLimitRule, entities.DocumentInfo, error) {
	var doc rollLimitsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, entities.DocumentInfo{}, fmt.Errorf("failed to parse roll limits: %w", err)
	}

	info, err := doc.info(entities.DocRollLimits)
	if err != nil {
		return nil, info, err
	}

	rules := make([]entities.RollLimitRule, 0, len(doc.Rules))
	for i, raw := range doc.Rules {
		od, err := parseDecimal("od", raw.OD)
		if err != nil {
			return nil, info, fmt.Errorf("roll limit rule %d: %w", i+1, err)
		}

		category, err := entities.ParseMaterialCategory(raw.MaterialCategory)
		if err != nil {
			return nil, info, fmt.Errorf("roll limit rule %d: %w", i+1, err)
		}

		minDiameter, err := parseDecimal("minDiameter", raw.MinDiameter)
		if err != nil {
			return nil, info, fmt.Errorf("roll limit rule %d: %w", i+1, err)
		}

		rules = append(rules, entities.RollLimitRule{
			OD:               od,
			MaterialCategory: category,
			MinDiameter:      minDiameter,
			Label:            raw.Label,
		})
	}

	return rules, info, nil
}

// ParseMandrelDies parses a mandrel_dies document
func ParseMandrelDies(data []byte) ([]entities.MandrelDie, entities.DocumentInfo, error) {
	var doc mandrelDiesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, entities.DocumentInfo{}, fmt.Errorf("failed to parse mandrel dies: %w", err)
	}

	info, err := doc.info(entities.DocMandrelDies)
	if err != nil {
		return nil, info, err
	}

	dies := make([]entities.MandrelDie, 0, len(doc.Dies))
	for i, raw := range doc.Dies {
		od, err := parseDecimal("od", raw.OD)
		if err != nil {
			return nil, info, fmt.Errorf("mandrel die %d: %w", i+1, err)
		}

		minDiameter, err := parseDecimal("minDiameter", raw.MinDiameter)
		if err != nil {
			return nil, info, fmt.Errorf("mandrel die %d: %w", i+1, err)
		}

		dies = append(dies, entities.MandrelDie{
			OD:            od,
			WallThickness: raw.WallThickness,
			MinDiameter:   minDiameter,
			Label:         raw.Label,
			Notes:         raw.Notes,
		})
	}

	return dies, info, nil
}

// ParseMaterialGrades parses a material_grades document
func ParseMaterialGrades(data []byte) ([]entities.MaterialGrade, entities.DocumentInfo, error) {
	var doc materialGradesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, entities.DocumentInfo{}, fmt.Errorf("failed to parse material grades: %w", err)
	}

	info, err := doc.info(entities.DocMaterialGrades)
	if err != nil {
		return nil, info, err
	}

	grades := make([]entities.MaterialGrade, 0, len(doc.Grades))
	for i, raw := range doc.Grades {
		partTypes := make([]entities.PartType, 0, len(raw.PartTypes))
		for _, pt := range raw.PartTypes {
			parsed, err := entities.ParsePartType(pt)
			if err != nil {
				return nil, info, fmt.Errorf("material grade %d (%s): %w", i+1, raw.Name, err)
			}
			partTypes = append(partTypes, parsed)
		}

		grades = append(grades, entities.MaterialGrade{
			Name:            raw.Name,
			PartTypes:       partTypes,
			YieldStrength:   raw.YieldStrength,
			TensileStrength: raw.TensileStrength,
		})
	}

	return grades, info, nil
}

// ParseWeldRates parses a weld_rates document
func ParseWeldRates(data []byte) (entities.WeldRateTable, entities.DocumentInfo, error) {
	var doc weldRatesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, entities.DocumentInfo{}, fmt.Errorf("failed to parse weld rates: %w", err)
	}

	info, err := doc.info(entities.DocWeldRates)
	if err != nil {
		return nil, info, err
	}

	rates := make(entities.WeldRateTable, len(doc.Rates))
	for grade, raw := range doc.Rates {
		rate, err := parseDecimal("rate", raw)
		if err != nil {
			return nil, info, fmt.Errorf("weld rate for %q: %w", grade, err)
		}
		rates[grade] = rate
	}

	return rates, info, nil
}

// ParseTaxSettings parses a tax_settings document
func ParseTaxSettings(data []byte) (entities.TaxSettings, entities.DocumentInfo, error) {
	var doc taxSettingsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return entities.TaxSettings{}, entities.DocumentInfo{}, fmt.Errorf("failed to parse tax settings: %w", err)
	}

	info, err := doc.info(entities.DocTaxSettings)
	if err != nil {
		return entities.TaxSettings{}, info, err
	}

	var ts entities.TaxSettings
	if ts.DefaultTaxRate, err = parseDecimal("defaultTaxRate", doc.DefaultTaxRate); err != nil {
		return ts, info, err
	}
	if ts.DefaultLaborRate, err = parseDecimal("defaultLaborRate", doc.DefaultLaborRate); err != nil {
		return ts, info, err
	}
	if ts.DefaultMaterialMarkup, err = parseDecimal("defaultMaterialMarkup", doc.DefaultMaterialMarkup); err != nil {
		return ts, info, err
	}

	return ts, info, nil
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, fmt.Errorf("missing %s", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", field, value)
	}
	return d, nil
}

func parseOptionalDecimal(field string, value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	d, err := parseDecimal(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
