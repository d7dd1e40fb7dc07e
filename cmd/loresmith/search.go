package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find sections by header across the campaign",
		Long: `Search sections across every loaded document. Plain queries match a
header exactly, ignoring case; a leading $ matches headers by regular
expression; a leading + matches body text by regular expression.

Example:
  loresmith search shield
  loresmith search '$grappl'
  loresmith search '+opportunity attack'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, _ := cmd.Flags().GetBool("full")

			lib, _, err := loadLibrary(cmd.Context())
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			sections, err := lib.Search(query)
			if err != nil {
				return err
			}
			if len(sections) == 0 {
				fmt.Printf("No sections match %q.\n", query)
				return nil
			}

			for i, sec := range sections {
				if full {
					if i > 0 {
						fmt.Println()
					}
					fmt.Println(sec.Text())
				} else {
					fmt.Println(sec.Path())
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("full", false, "Print whole sections instead of header paths")

	return cmd
}
