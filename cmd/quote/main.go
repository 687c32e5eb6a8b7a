package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fabshop/quoting/pkg/interfaces/cli/commands"
)

func main() {
	// Optional .env for shop-local defaults
	_ = godotenv.Load()

	var (
		settingsDir = flag.String(
			"settings",
			os.Getenv("QUOTE_SETTINGS_DIR"),
			"Directory of JSON settings documents",
		)
		settingsDB   = flag.String("db", os.Getenv("QUOTE_SETTINGS_DB"), "SQLite settings database")
		estimateFile = flag.String("estimate", "", "Estimate scenario YAML file")
		outputDir    = flag.String("output", "", "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		SettingsDir:  *settingsDir,
		SettingsDB:   *settingsDB,
		EstimateFile: *estimateFile,
		Format:       *format,
		OutputDir:    *outputDir,
		Verbose:      *verbose,
		Help:         *help,
	}

	cmd := commands.NewQuoteCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
