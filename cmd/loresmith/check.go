package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the campaign and report what compiled",
		Long: `Load every configured folder and report what compiled: document,
creature, and table counts, plus every section the compiler had to skip.

Example:
  loresmith check
  loresmith check --folder srd --folder campaign --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")

			lib, report, err := loadLibrary(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d document(s) from %s\n", report.Documents, strings.Join(report.Folders, ", "))
			fmt.Printf("  creatures:         %d\n", report.Creatures)
			fmt.Printf("  player characters: %d\n", report.PCs)
			fmt.Printf("  tables:            %d\n", report.Tables)
			if lib.Calendar != nil {
				fmt.Printf("  calendar:          %s\n", lib.Calendar.Name)
			}
			if lib.Names != nil {
				fmt.Printf("  name cultures:     %s\n", strings.Join(lib.Names.CultureNames(), ", "))
			}

			if len(report.Problems) == 0 {
				fmt.Println("No problems found.")
				return nil
			}

			fmt.Printf("\n%d problem(s):\n", len(report.Problems))
			for _, p := range report.Problems {
				if p.Section != "" {
					fmt.Printf("  %s (%s): %v\n", p.Document, p.Section, p.Err)
				} else {
					fmt.Printf("  %s: %v\n", p.Document, p.Err)
				}
			}
			if strict {
				return fmt.Errorf("%d problem(s) found", len(report.Problems))
			}
			return nil
		},
	}

	cmd.Flags().Bool("strict", false, "Exit non-zero when any document has problems")

	return cmd
}
