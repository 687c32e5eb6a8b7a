package settings

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

// Estimate scenario files are YAML with all numeric values as strings,
// matching the decimal-safe convention of the settings documents.

type estimateYAML struct {
	ID             string     `yaml:"id"`
	Client         string     `yaml:"client"`
	TaxStatus      string     `yaml:"tax_status"`
	CustomTaxRate  string     `yaml:"custom_tax_rate"`
	MaterialMarkup string     `yaml:"material_markup"`
	LaborRate      string     `yaml:"labor_rate"`
	Parts          []partYAML `yaml:"parts"`
}

type partYAML struct {
	Label            string `yaml:"label"`
	PartType         string `yaml:"part_type"`
	MaterialGrade    string `yaml:"material_grade"`
	MaterialCategory string `yaml:"material_category"`
	Thickness        string `yaml:"thickness"`
	AngleSize        string `yaml:"angle_size"`
	SectionSize      string `yaml:"section_size"`
	OuterDiameter    string `yaml:"outer_diameter"`
	Width            string `yaml:"width"`
	SeamLength       string `yaml:"seam_length"`
	BendDiameter     string `yaml:"bend_diameter"`
	MaterialCost     string `yaml:"material_cost"`
	LaborCost        string `yaml:"labor_cost"`
	LaborHours       string `yaml:"labor_hours"`
	Quantity         int64  `yaml:"quantity"`
}

// LoadEstimate loads an estimate scenario from a YAML file. Estimates
// without an ID are assigned one.
func (l *Loader) LoadEstimate(path string) (*entities.Estimate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read estimate file %s: %w", path, err)
	}

	var raw estimateYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse estimate file %s: %w", path, err)
	}

	estimate := &entities.Estimate{
		ID:     raw.ID,
		Client: raw.Client,
	}
	if estimate.ID == "" {
		estimate.ID = uuid.NewString()
	}

	if estimate.TaxStatus, err = entities.ParseTaxStatus(raw.TaxStatus); err != nil {
		return nil, fmt.Errorf("estimate file %s: %w", path, err)
	}

	if estimate.CustomTaxRate, err = optionalDecimal("custom_tax_rate", raw.CustomTaxRate); err != nil {
		return nil, fmt.Errorf("estimate file %s: %w", path, err)
	}
	if estimate.MaterialMarkup, err = optionalDecimal("material_markup", raw.MaterialMarkup); err != nil {
		return nil, fmt.Errorf("estimate file %s: %w", path, err)
	}
	if estimate.LaborRate, err = optionalDecimal("labor_rate", raw.LaborRate); err != nil {
		return nil, fmt.Errorf("estimate file %s: %w", path, err)
	}

	if len(raw.Parts) == 0 {
		return nil, fmt.Errorf("estimate file %s: estimate has no parts", path)
	}

	estimate.Parts = make([]entities.Part, 0, len(raw.Parts))
	for i, rawPart := range raw.Parts {
		part, err := parsePart(rawPart)
		if err != nil {
			return nil, fmt.Errorf("estimate file %s: part %d: %w", path, i+1, err)
		}
		estimate.Parts = append(estimate.Parts, part)
	}

	return estimate, nil
}

func parsePart(raw partYAML) (entities.Part, error) {
	partType, err := entities.ParsePartType(raw.PartType)
	if err != nil {
		return entities.Part{}, err
	}

	category, err := entities.ParseMaterialCategory(raw.MaterialCategory)
	if err != nil {
		return entities.Part{}, err
	}

	if raw.Quantity <= 0 {
		return entities.Part{}, fmt.Errorf("quantity must be positive, got %d", raw.Quantity)
	}

	part := entities.Part{
		Label:            raw.Label,
		PartType:         partType,
		MaterialGrade:    raw.MaterialGrade,
		MaterialCategory: category,
		Quantity:         raw.Quantity,
	}

	fields := []struct {
		name  string
		value string
		dest  *decimal.Decimal
	}{
		{"thickness", raw.Thickness, &part.Thickness},
		{"angle_size", raw.AngleSize, &part.AngleSize},
		{"section_size", raw.SectionSize, &part.SectionSize},
		{"outer_diameter", raw.OuterDiameter, &part.OuterDiameter},
		{"width", raw.Width, &part.Width},
		{"seam_length", raw.SeamLength, &part.SeamLength},
		{"bend_diameter", raw.BendDiameter, &part.BendDiameter},
		{"material_cost", raw.MaterialCost, &part.MaterialCost},
		{"labor_cost", raw.LaborCost, &part.LaborCost},
		{"labor_hours", raw.LaborHours, &part.LaborHours},
	}

	for _, f := range fields {
		if f.value == "" {
			*f.dest = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(f.value)
		if err != nil {
			return entities.Part{}, fmt.Errorf("invalid %s: %s", f.name, f.value)
		}
		*f.dest = d
	}

	return part, nil
}

func optionalDecimal(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", field, value)
	}
	return &d, nil
}
