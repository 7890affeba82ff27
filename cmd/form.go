package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// readForm overlays a YAML or JSON form file onto state.
func readForm(path string, state qrstyle.FormState) (qrstyle.FormState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return state, err
	}
	var overlay qrstyle.PartialFormState
	if err = yaml.Unmarshal(raw, &overlay); err != nil {
		return state, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return state.Apply(overlay), nil
}

// setFields applies field=value assignments in order.
func setFields(state *qrstyle.FormState, assignments []string) error {
	for _, a := range assignments {
		field, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("expected field=value, got %q", a)
		}
		if err := state.SetField(strings.TrimSpace(field), value); err != nil {
			return err
		}
	}
	return nil
}

func printFieldErrors(err error) {
	for _, e := range multierr.Errors(err) {
		fmt.Printf("  %s\n", e)
	}
}
