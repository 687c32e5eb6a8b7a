package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fabshop/quoting/pkg/application/services"
	"github.com/fabshop/quoting/pkg/domain/entities"
	domainservices "github.com/fabshop/quoting/pkg/domain/services"
	"github.com/fabshop/quoting/pkg/infrastructure/repositories/memory"
	"github.com/fabshop/quoting/pkg/infrastructure/repositories/settings"
	"github.com/fabshop/quoting/pkg/infrastructure/store"
	"github.com/fabshop/quoting/pkg/interfaces/cli/output"
)

// Config holds configuration for the quote command
type Config struct {
	SettingsDir  string
	SettingsDB   string
	EstimateFile string
	Format       string
	OutputDir    string
	Verbose      bool
	Help         bool
}

// QuoteCommand prices an estimate scenario against the shop's rule tables
type QuoteCommand struct {
	config Config
}

// NewQuoteCommand creates a new quote command with the given configuration
func NewQuoteCommand(config Config) *QuoteCommand {
	return &QuoteCommand{
		config: config,
	}
}

// Execute runs the quote command
func (c *QuoteCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	rules, err := c.loadRules(ctx)
	if err != nil {
		return fmt.Errorf("error loading rule tables: %w", err)
	}

	ruleRepo := memory.NewRuleRepository()
	if err := ruleRepo.LoadRuleSet(rules); err != nil {
		return fmt.Errorf("failed to load rule set into repository: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Rule tables loaded:\n")
		fmt.Printf("  Labor Minimums: %d\n", len(rules.LaborMinimums))
		fmt.Printf("  Roll Limits: %d\n", len(rules.RollLimits))
		fmt.Printf("  Mandrel Dies: %d\n", len(rules.MandrelDies))
		fmt.Printf("  Material Grades: %d\n", len(rules.MaterialGrades))
		fmt.Printf("  Weld Rates: %d\n", len(rules.WeldRates))
		fmt.Println()
	}

	validator := domainservices.NewRuleValidator()
	validation := validator.ValidateRuleSet(rules)
	if !validation.Valid() {
		for _, e := range validation.Errors {
			fmt.Fprintf(os.Stderr, "rule error: %s\n", e)
		}
		return fmt.Errorf("rule tables failed validation with %d error(s)", len(validation.Errors))
	}
	if c.config.Verbose {
		for _, w := range validation.Warnings {
			fmt.Printf("rule warning: %s\n", w)
		}
	}

	loader := settings.NewLoader()
	estimate, err := loader.LoadEstimate(c.config.EstimateFile)
	if err != nil {
		return fmt.Errorf("error loading estimate: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Estimate %s: %d part(s)\n\n", estimate.ID, len(estimate.Parts))
	}

	snapshot, err := ruleRepo.GetRuleSet()
	if err != nil {
		return err
	}

	pricer := services.NewEstimatePricer(snapshot)
	priced, err := pricer.Price(estimate)
	if err != nil {
		return fmt.Errorf("error pricing estimate: %w", err)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}

	if err := output.Generate(priced, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// loadRules reads the rule tables from the SQLite store when a database
// path is configured, otherwise from a directory of JSON documents.
func (c *QuoteCommand) loadRules(ctx context.Context) (*entities.RuleSet, error) {
	if c.config.SettingsDB != "" {
		db, err := store.Open(c.config.SettingsDB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadRuleSet(ctx)
	}

	return settings.NewLoader().LoadRuleSet(c.config.SettingsDir)
}

// validateInputs validates the command configuration
func (c *QuoteCommand) validateInputs() error {
	if c.config.SettingsDir == "" && c.config.SettingsDB == "" {
		return fmt.Errorf("must specify either -settings directory or -db settings database")
	}
	if c.config.EstimateFile == "" {
		return fmt.Errorf("must specify -estimate file")
	}
	if _, err := os.Stat(c.config.EstimateFile); os.IsNotExist(err) {
		return fmt.Errorf("estimate file not found: %s", c.config.EstimateFile)
	}
	return nil
}

// showHelp displays the help message
func (c *QuoteCommand) showHelp() {
	fmt.Printf(`Quote CLI - Estimate Pricing for Metal Fabrication

USAGE:
    quote -settings <dir> -estimate <file>      # Rule tables from JSON documents
    quote -db <file> -estimate <file>           # Rule tables from SQLite store

OPTIONS:
    -settings <dir>     Directory of JSON settings documents
    -db <file>          SQLite settings database (takes precedence over -settings)
    -estimate <file>    Estimate scenario YAML file
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

SETTINGS DIRECTORY STRUCTURE:
    settings/
    ├── labor_minimums.json
    ├── roll_limits.json
    ├── mandrel_dies.json
    ├── material_grades.json
    ├── weld_rates.json
    └── tax_settings.json

ESTIMATE FILE FORMAT (YAML, decimals as strings):
    client: Acme Rail
    tax_status: taxable
    custom_tax_rate: "9.75"
    parts:
      - label: Handrail segment
        part_type: pipe_roll
        material_grade: A53
        material_category: steel
        outer_diameter: "2.375"
        bend_diameter: "36"
        thickness: "0.154"
        seam_length: "50"
        material_cost: "42.10"
        labor_hours: "1.5"
        quantity: 4

ENVIRONMENT:
    QUOTE_SETTINGS_DIR  Default for -settings
    QUOTE_SETTINGS_DB   Default for -db
    (a .env file in the working directory is honored)

EXAMPLES:
    quote -settings ./settings -estimate jobs/handrail.yaml -verbose
    quote -db shop.db -estimate jobs/handrail.yaml -format json -output results/
`)
}
