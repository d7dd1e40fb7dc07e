package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wrenfold/loresmith/internal/campaign"
	"github.com/wrenfold/loresmith/internal/config"
	"github.com/wrenfold/loresmith/internal/dice"
)

var version = "0.1.0"

// Shared state the root command wires up before any verb runs.
var (
	cfg     *config.Config
	folders []string
	roller  dice.Roller
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loresmith",
		Short: "Compile campaign markdown into queryable game content",
		Long: `Loresmith reads folders of numbered markdown files and compiles them
into creature stat blocks, rollable tables, a calendar, and name grammars.

Configuration comes from the environment, optionally via a .env file:
  LORESMITH_CAMPAIGN     campaign folder (default "campaign")
  LORESMITH_SRD          reference folder loaded before the campaign
  LORESMITH_DATE_FORMAT  calendar format the date command renders with
  LORESMITH_SEED         fixed dice seed; zero stays random
  LORESMITH_LOG_LEVEL    debug, info, warn, or error`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringSlice("folder", nil, "Folders to load in fold order (overrides the environment)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Dice seed for reproducible draws (overrides the environment)")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(creatureCmd())
	rootCmd.AddCommand(dateCmd())
	rootCmd.AddCommand(nameCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(tableCmd())
	rootCmd.AddCommand(weatherCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env and the environment config, then applies flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	if envErr == nil {
		slog.Debug("loaded .env file")
	}

	folders = cfg.Folders()
	if override, _ := cmd.Flags().GetStringSlice("folder"); len(override) > 0 {
		folders = override
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	roller = cfg.Roller()
	return nil
}

// loadLibrary compiles the configured folders into a library.
func loadLibrary(ctx context.Context) (*campaign.Library, *campaign.Report, error) {
	loader := campaign.NewLoader(nil)
	return loader.Load(ctx, folders...)
}
