package cmd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/importer"
	"github.com/gaurav-prasanna/recipepipe/core/output"
	"github.com/gaurav-prasanna/recipepipe/core/render"
)

// Output flag variables.
var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
	flagServings  int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a recipe from a URL, pasted text or a photo",
	Long: `Import runs one recipe through the import pipeline and prints the result.

Output defaults to JSON on stdout. With --output_dir the rendered recipe is
written to a file named after its source. PDF output is always written to a file.

Examples:
  recipepipe import url https://www.example.com/recipe --markdown
  recipepipe import url https://youtu.be/dQw4w9WgXcQ --json
  pbpaste | recipepipe import text --markdown --servings 6
  recipepipe import photo card.jpg --pdf --output_dir ./out`,
}

var importURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Import a recipe page or a video link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), importer.Request{Mode: importer.ModeURL, URL: args[0]})
	},
}

var importTextCmd = &cobra.Command{
	Use:   "text [file|-]",
	Short: "Import pasted recipe text (plain text or HTML) from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "-"
		if len(args) == 1 {
			name = args[0]
		}
		text, err := readInput(cmd.InOrStdin(), name)
		if err != nil {
			return err
		}
		return runImport(cmd.Context(), importer.Request{Mode: importer.ModeText, Text: string(text)})
	},
}

var importPhotoCmd = &cobra.Command{
	Use:   "photo <file>",
	Short: "Import a recipe from a JPEG, PNG or WebP photo (requires an API key)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading photo: %w", err)
		}
		return runImport(cmd.Context(), importer.Request{
			Mode:      importer.ModePhoto,
			Image:     base64.StdEncoding.EncodeToString(data),
			MediaType: mediaTypeFromPath(args[0]),
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importURLCmd, importTextCmd, importPhotoCmd)

	// Output format flags (mutually exclusive).
	importCmd.PersistentFlags().BoolVar(&flagPDF, "pdf", false, "Output a PDF recipe card")
	importCmd.PersistentFlags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	importCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output JSON (default)")

	importCmd.PersistentFlags().StringVar(&flagOutputDir, "output_dir", "", "Write the output to a file in this directory")
	importCmd.PersistentFlags().IntVar(&flagServings, "servings", 0, "Scale ingredient quantities to this many servings")
}

func runImport(ctx context.Context, req importer.Request) error {
	renderer, err := selectRenderer()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	res := newImporter().Import(ctx, req)
	if !res.Success {
		return errors.New(res.Error)
	}

	data, err := renderer.Render(*res.Recipe)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if flagOutputDir == "" && !flagPDF {
		_, err := os.Stdout.Write(data)
		return err
	}
	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(*res.Recipe, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// validateFlags checks that at most one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, f := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if f {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	if flagServings < 0 {
		return fmt.Errorf("--servings must be positive")
	}
	return nil
}

// selectRenderer creates the Renderer chosen by flags, JSON by default.
func selectRenderer() (core.Renderer, error) {
	if err := validateFlags(); err != nil {
		return nil, err
	}
	opts := []render.Option{render.WithServings(flagServings)}
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(opts...), nil
	case flagPDF:
		return render.NewPDFRenderer(opts...), nil
	default:
		return render.NewJSONRenderer(opts...), nil
	}
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// mediaTypeFromPath maps a photo file extension to the short media type
// the importer accepts. Unknown extensions are passed through and rejected
// by validation.
func mediaTypeFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "jpg" {
		return "jpeg"
	}
	return ext
}
