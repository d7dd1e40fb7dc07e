package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func tableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table [name]",
		Short: "Roll on a campaign table",
		Long: `Roll on a rollable table and print the result. Run without arguments
to list the loaded tables.

Example:
  loresmith table trinkets
  loresmith table trinkets --pick 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, _, err := loadLibrary(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names := lib.TableNames()
				if len(names) == 0 {
					fmt.Println("The campaign defines no tables.")
					return nil
				}
				for _, name := range names {
					tbl, err := lib.Table(name)
					if err != nil {
						return err
					}
					fmt.Printf("%s (%s, %d rows)\n", name, tbl.Roll, len(tbl.Rows))
				}
				return nil
			}

			tbl, err := lib.Table(strings.Join(args, " "))
			if err != nil {
				return err
			}

			if pick, _ := cmd.Flags().GetInt("pick"); pick > 0 {
				result, err := tbl.Pick(pick)
				if err != nil {
					return err
				}
				fmt.Println(result)
				return nil
			}

			result, err := tbl.Draw(roller)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().Int("pick", 0, "Read the row covering this value instead of rolling")

	return cmd
}
