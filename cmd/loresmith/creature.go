package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func creatureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "creature [name]",
		Short: "Print a creature's compiled stat block",
		Long: `Print the stat block compiled for a creature or player character.
Run without arguments to list everything the campaign defines.

Example:
  loresmith creature orc
  loresmith creature young red dragon`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, _, err := loadLibrary(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				for _, name := range lib.Catalog.Names() {
					fmt.Println(name)
				}
				if lib.PCs.Len() > 0 {
					fmt.Println("\nPlayer characters:")
					for _, name := range lib.PCs.Names() {
						fmt.Println(name)
					}
				}
				return nil
			}

			tmpl, err := lib.Creature(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(tmpl.Render())
			return nil
		},
	}
}
