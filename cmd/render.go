package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Badsnus/qr-styler/internal/adapters/config"
	"github.com/Badsnus/qr-styler/internal/domain/service"
	"github.com/Badsnus/qr-styler/pkg/generator"
	"github.com/Badsnus/qr-styler/pkg/logger"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a QR code to a file",
	Long: `Render builds a form from the configured defaults, then the preset, then the
form file, then every --set assignment, and writes the result.`,
	Example: `  qr-styler render --preset ocean --set data=https://example.com -o code.png
  qr-styler render --form form.yaml --type svg --out-dir codes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		formPath, _ := cmd.Flags().GetString("form")
		presetName, _ := cmd.Flags().GetString("preset")
		assignments, _ := cmd.Flags().GetStringArray("set")
		drawType, _ := cmd.Flags().GetString("type")
		outDir, _ := cmd.Flags().GetString("out-dir")
		output, _ := cmd.Flags().GetString("output")

		state, err := config.Defaults()
		if err != nil {
			return err
		}
		if presetName != "" {
			p, err := service.NewPresetService(nil, 0).Get(cmd.Context(), 0, presetName)
			if err != nil {
				return err
			}
			state = p.Apply(state)
		}
		if formPath != "" {
			if state, err = readForm(formPath, state); err != nil {
				return err
			}
		}
		if err = setFields(&state, assignments); err != nil {
			return err
		}
		if drawType != "" {
			if state.Type, err = qrstyle.ParseDrawType(drawType); err != nil {
				return err
			}
		}

		renderLogger, err := logger.Named("render")
		if err != nil {
			return err
		}
		qrService := service.NewQrService(newRenderer(), nil, renderLogger)

		if outDir == "" {
			outDir = viper.GetString("qr.output-dir")
		}
		gen, err := generator.New(qrService, outDir)
		if err != nil {
			return err
		}

		if output != "" {
			err = gen.WriteTo(cmd.Context(), state, output)
		} else {
			_, output, err = gen.Generate(cmd.Context(), state)
		}
		if err != nil {
			return err
		}
		fmt.Println(output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("form", "f", "", "YAML or JSON form file")
	renderCmd.Flags().StringP("preset", "p", "", "Preset to apply before the form file")
	renderCmd.Flags().StringArrayP("set", "s", nil, "Field assignment, e.g. dots.type=rounded (repeatable)")
	renderCmd.Flags().StringP("type", "t", "", "Output type: canvas (PNG) or svg")
	renderCmd.Flags().String("out-dir", "", "Directory for generated files (default qr.output-dir)")
	renderCmd.Flags().StringP("output", "o", "", "Exact output file, overrides --out-dir")
}
