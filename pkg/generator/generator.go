package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

type renderer interface {
	Render(ctx context.Context, state qrstyle.FormState) (*qr.Result, error)
}

// Generator renders form states into files named by a random id
type Generator struct {
	renderer  renderer
	OutputDir string
}

func New(r renderer, outputDir string) (*Generator, error) {
	if !filepath.IsAbs(outputDir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		outputDir = filepath.Join(wd, outputDir)
	}
	return &Generator{
		renderer:  r,
		OutputDir: outputDir,
	}, nil
}

// Generate renders state and writes it to OutputDir. It returns the file id
// and the full path.
func (g *Generator) Generate(ctx context.Context, state qrstyle.FormState) (string, string, error) {
	res, err := g.renderer.Render(ctx, state)
	if err != nil {
		return "", "", err
	}

	id := uuid.New().String()
	filePath := filepath.Join(g.OutputDir, fmt.Sprintf("%s.%s", id, res.Extension))

	if err = g.ensureOutputDir(); err != nil {
		return "", "", err
	}
	if err = os.WriteFile(filePath, res.Data, 0o644); err != nil {
		return "", "", err
	}
	return id, filePath, nil
}

// WriteTo renders state into exactly filePath.
func (g *Generator) WriteTo(ctx context.Context, state qrstyle.FormState, filePath string) error {
	res, err := g.renderer.Render(ctx, state)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(filePath, res.Data, 0o644)
}

func (g *Generator) ensureOutputDir() error {
	if _, err := os.Stat(g.OutputDir); os.IsNotExist(err) {
		err = os.MkdirAll(g.OutputDir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}
