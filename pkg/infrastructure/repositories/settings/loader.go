package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fabshop/quoting/pkg/domain/entities"
)

// Loader handles loading rule tables from a directory of JSON settings
// documents, one file per table, named after the document keys
// (labor_minimums.json, roll_limits.json, and so on).
type Loader struct{}

// NewLoader creates a new settings loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRuleSet loads every settings document from a directory into a rule
// set snapshot. All six documents must be present; a shop with no mandrel
// tooling still carries an empty mandrel_dies document.
func (l *Loader) LoadRuleSet(dir string) (*entities.RuleSet, error) {
	rules := &entities.RuleSet{
		Documents: make(map[string]entities.DocumentInfo),
	}

	var err error
	var info entities.DocumentInfo

	if rules.LaborMinimums, info, err = loadDoc(dir, entities.DocLaborMinimums, ParseLaborMinimums); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if rules.RollLimits, info, err = loadDoc(dir, entities.DocRollLimits, ParseRollLimits); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if rules.MandrelDies, info, err = loadDoc(dir, entities.DocMandrelDies, ParseMandrelDies); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if rules.MaterialGrades, info, err = loadDoc(dir, entities.DocMaterialGrades, ParseMaterialGrades); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if rules.WeldRates, info, err = loadDoc(dir, entities.DocWeldRates, ParseWeldRates); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if rules.Tax, info, err = loadDoc(dir, entities.DocTaxSettings, ParseTaxSettings); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	return rules, nil
}

// loadDoc reads and parses a single named settings document
func loadDoc[T any](dir, name string, parse func([]byte) (T, entities.DocumentInfo, error)) (T, entities.DocumentInfo, error) {
	var zero T
	path := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, entities.DocumentInfo{}, fmt.Errorf("failed to read %s document %s: %w", name, path, err)
	}

	value, info, err := parse(data)
	if err != nil {
		return zero, info, fmt.Errorf("%s: %w", path, err)
	}
	return value, info, nil
}
