package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrenfold/loresmith/internal/calendar"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

func dateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date <year/day [hour:minute]>",
		Short: "Render a campaign date through the calendar",
		Long: `Render a campaign timestamp through the loaded calendar.

The timestamp takes the forms ParseClock accepts: "2/45 8:05", "2/45",
"8:05", or a bare number of minutes. The --advance flag moves the clock
before rendering, rolling days and years through the calendar.

Example:
  loresmith date 2/45
  loresmith date 2/45 8:05 --advance 90
  loresmith date 2/45 --format long`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			advanceSpec, _ := cmd.Flags().GetString("advance")

			lib, _, err := loadLibrary(cmd.Context())
			if err != nil {
				return err
			}
			if lib.Calendar == nil {
				return lorerr.NotFound("the campaign defines no calendar")
			}
			cal := lib.Calendar

			t, err := calendar.ParseClock(strings.Join(args, " "))
			if err != nil {
				return err
			}
			// Settles bare-minute and overflowing inputs onto the calendar.
			t = cal.Advance(t, 0, 0)

			if advanceSpec != "" {
				delta, err := calendar.ParseClock(advanceSpec)
				if err != nil {
					return err
				}
				if delta.Year != 0 || delta.Day != 0 {
					return lorerr.InvalidArgument("--advance takes hours:minutes or a bare number of minutes")
				}
				t = cal.Advance(t, delta.Hour, delta.Minute)
			}

			absolute, err := cal.AbsoluteDay(t.Year, t.Day)
			if err != nil {
				return err
			}
			if formatName == "" {
				formatName = cfg.DateFormat
			}
			rendered, err := cal.Format(formatName, absolute)
			if err != nil {
				return err
			}

			fmt.Println(t.String())
			fmt.Println(rendered)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "", "Calendar format name (defaults to LORESMITH_DATE_FORMAT)")
	cmd.Flags().String("advance", "", "Hours:minutes or minutes to advance before rendering")

	return cmd
}
