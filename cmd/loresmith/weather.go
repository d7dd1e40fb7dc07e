package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
	"github.com/wrenfold/loresmith/internal/weather"
)

func weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather [climate] [season]",
		Short: "Roll a day of weather",
		Long: `Roll temperature, wind, and precipitation for a climate and season.
Run without arguments to list the known climates and seasons.

Example:
  loresmith weather temperate spring
  loresmith weather monsoon summer --seed 7`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println("Climates:")
				for _, climate := range weather.Climates() {
					fmt.Printf("  %s\n", climate)
				}
				fmt.Printf("Seasons: %s\n", strings.Join(weather.Seasons(), ", "))
				return nil
			}
			if len(args) != 2 {
				return lorerr.InvalidArgument("weather takes a climate and a season")
			}

			report, err := weather.Generate(args[0], args[1], roller)
			if err != nil {
				return err
			}
			for _, line := range report.Describe() {
				fmt.Println(line)
			}
			for _, warning := range report.Warnings() {
				fmt.Println(warning)
			}
			return nil
		},
	}
}
