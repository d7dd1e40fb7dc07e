package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

func nameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name [culture] [gender]",
		Short: "Generate names from the campaign's name grammar",
		Long: `Generate names from the loaded name grammar. The gender defaults to
"any". Run without arguments to list the cultures and their genders.

Example:
  loresmith name valefolk female
  loresmith name valefolk --count 5`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")

			lib, _, err := loadLibrary(cmd.Context())
			if err != nil {
				return err
			}
			if lib.Names == nil {
				return lorerr.NotFound("the campaign defines no name grammar")
			}

			if len(args) == 0 {
				for _, culture := range lib.Names.CultureNames() {
					genders, err := lib.Names.GenderNames(culture)
					if err != nil {
						return err
					}
					fmt.Printf("%s: %s\n", culture, strings.Join(genders, ", "))
				}
				return nil
			}

			culture := args[0]
			gender := "any"
			if len(args) == 2 {
				gender = args[1]
			}
			for i := 0; i < count; i++ {
				name, err := lib.Names.Generate(culture, gender, roller)
				if err != nil {
					return err
				}
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().IntP("count", "n", 1, "How many names to generate")

	return cmd
}
