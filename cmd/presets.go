package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Badsnus/qr-styler/internal/domain/service"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List built-in presets or print one as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := service.NewPresetService(nil, 0)

		if len(args) == 0 {
			list, err := presets.List(cmd.Context(), 0)
			if err != nil {
				return err
			}
			for _, p := range list {
				fmt.Printf("%-10s %s\n", p.Name, p.Description)
			}
			return nil
		}

		p, err := presets.Get(cmd.Context(), 0, args[0])
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(p.Config())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
