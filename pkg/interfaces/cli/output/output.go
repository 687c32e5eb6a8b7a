package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fabshop/quoting/pkg/application/dto"
	"github.com/fabshop/quoting/pkg/domain/services"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate renders a priced estimate in the specified format. Monetary
// values are rounded half-up to 2 places here, at the display boundary;
// the dto keeps full precision.
func Generate(result *dto.PricedEstimate, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return strings.TrimRight(strings.TrimRight(d.StringFixed(4), "0"), ".") + "%"
}

// RenderText writes the human-readable summary to a writer
func RenderText(w io.Writer, result *dto.PricedEstimate) {
	fmt.Fprintf(w, "Estimate Pricing Summary\n")
	fmt.Fprintf(w, "========================\n\n")

	fmt.Fprintf(w, "Estimate: %s\n", result.EstimateID)
	if result.Client != "" {
		fmt.Fprintf(w, "Client: %s\n", result.Client)
	}
	fmt.Fprintf(w, "Tax Status: %s\n\n", result.TaxStatus)

	fmt.Fprintf(w, "%-20s %-14s %5s %12s %12s %12s\n",
		"Part", "Type", "Qty", "Material", "Labor", "Weld")
	fmt.Fprintf(w, "%-20s %-14s %5s %12s %12s %12s\n",
		"--------------------", "--------------", "-----", "------------", "------------", "------------")

	for _, line := range result.Lines {
		fmt.Fprintf(w, "%-20s %-14s %5d %12s %12s %12s\n",
			line.Label,
			line.PartType.String(),
			line.Quantity,
			money(line.MaterialExtended),
			money(line.LaborExtended),
			money(line.WeldCost))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Material Subtotal (%s markup): %s\n", percent(result.MaterialMarkup), money(result.MaterialSubtotal))
	fmt.Fprintf(w, "Labor: %s\n", money(result.Labor.TotalLabor))
	if result.Labor.MinimumApplied {
		fmt.Fprintf(w, "Labor Minimum Applied: %s (%s)\n",
			money(result.Labor.SelectedRule.Minimum), result.Labor.SelectedRule.Label)
	}
	fmt.Fprintf(w, "Weld Charges: %s\n", money(result.WeldTotal))
	fmt.Fprintf(w, "Labor Total: %s\n", money(result.LaborTotal))
	fmt.Fprintf(w, "Subtotal: %s\n", money(result.Subtotal))
	fmt.Fprintf(w, "Tax (%s): %s\n", percent(result.TaxRate), money(result.Tax))
	fmt.Fprintf(w, "Grand Total: %s\n", money(result.GrandTotal))

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

func generateTextOutput(result *dto.PricedEstimate, config Config) error {
	RenderText(os.Stdout, result)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "estimate.txt")
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		RenderText(file, result)

		if config.Verbose {
			fmt.Printf("Results saved to: %s\n", filename)
		}
	}

	return nil
}

// JSON views round money to 2 places and carry it as strings, matching
// the decimal-safe convention of the settings documents.

type lineView struct {
	Label              string `json:"label"`
	PartType           string `json:"partType"`
	Quantity           int64  `json:"quantity"`
	MaterialExtended   string `json:"materialExtended"`
	LaborExtended      string `json:"laborExtended"`
	WeldCost           string `json:"weldCost"`
	Feasibility        string `json:"feasibility,omitempty"`
	SmallestAchievable string `json:"smallestAchievable,omitempty"`
}

type estimateView struct {
	EstimateID       string     `json:"estimateId"`
	Client           string     `json:"client,omitempty"`
	Lines            []lineView `json:"lines"`
	MaterialMarkup   string     `json:"materialMarkup"`
	MaterialSubtotal string     `json:"materialSubtotal"`
	TotalLabor       string     `json:"totalLabor"`
	EffectiveLabor   string     `json:"effectiveLabor"`
	MinimumApplied   bool       `json:"minimumApplied"`
	AppliedRule      string     `json:"appliedRule,omitempty"`
	WeldTotal        string     `json:"weldTotal"`
	LaborTotal       string     `json:"laborTotal"`
	Subtotal         string     `json:"subtotal"`
	TaxStatus        string     `json:"taxStatus"`
	TaxRate          string     `json:"taxRate"`
	Tax              string     `json:"tax"`
	GrandTotal       string     `json:"grandTotal"`
	Warnings         []string   `json:"warnings,omitempty"`
}

// buildView converts a priced estimate into its rounded JSON form
func buildView(result *dto.PricedEstimate) estimateView {
	view := estimateView{
		EstimateID:       result.EstimateID,
		Client:           result.Client,
		Lines:            make([]lineView, 0, len(result.Lines)),
		MaterialMarkup:   result.MaterialMarkup.String(),
		MaterialSubtotal: result.MaterialSubtotal.StringFixed(2),
		TotalLabor:       result.Labor.TotalLabor.StringFixed(2),
		EffectiveLabor:   result.Labor.EffectiveLabor.StringFixed(2),
		MinimumApplied:   result.Labor.MinimumApplied,
		WeldTotal:        result.WeldTotal.StringFixed(2),
		LaborTotal:       result.LaborTotal.StringFixed(2),
		Subtotal:         result.Subtotal.StringFixed(2),
		TaxStatus:        result.TaxStatus.String(),
		TaxRate:          result.TaxRate.String(),
		Tax:              result.Tax.StringFixed(2),
		GrandTotal:       result.GrandTotal.StringFixed(2),
		Warnings:         result.Warnings,
	}

	if result.Labor.SelectedRule != nil {
		view.AppliedRule = result.Labor.SelectedRule.Label
	}

	for _, line := range result.Lines {
		lv := lineView{
			Label:            line.Label,
			PartType:         line.PartType.String(),
			Quantity:         line.Quantity,
			MaterialExtended: line.MaterialExtended.StringFixed(2),
			LaborExtended:    line.LaborExtended.StringFixed(2),
			WeldCost:         line.WeldCost.StringFixed(2),
		}
		if line.Feasibility != nil {
			lv.Feasibility = line.Feasibility.Status.String()
			if line.Feasibility.Status == services.Infeasible {
				lv.SmallestAchievable = line.Feasibility.SmallestAchievable.String()
			}
		}
		view.Lines = append(view.Lines, lv)
	}

	return view
}

func generateJSONOutput(result *dto.PricedEstimate, config Config) error {
	jsonData, err := json.MarshalIndent(buildView(result), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
	} else {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "estimate.json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}

		if config.Verbose {
			fmt.Printf("Results saved to: %s\n", filename)
		}
	}

	return nil
}
