package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Badsnus/qr-styler/internal/adapters/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [form file]",
	Short: "Validate a form file against the configured defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := config.Defaults()
		if err != nil {
			return err
		}
		state, err := readForm(args[0], defaults)
		if err != nil {
			return err
		}
		if err = state.Validate(); err != nil {
			fmt.Printf("%s is invalid:\n", args[0])
			printFieldErrors(err)
			return fmt.Errorf("validation failed")
		}
		fmt.Printf("%s is valid\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
