package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Badsnus/qr-styler/internal/adapters/config"
)

var rootCmd = &cobra.Command{
	Use:   "qr-styler",
	Short: "qr-styler edits, stores and renders styled QR codes",
	Long: `qr-styler keeps QR code styling forms (dots, corners, gradients, logo)
and renders them as PNG or SVG from the command line, an HTTP API or a Telegram bot.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		return config.Load(path)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./config.yaml)")
}
