package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// PDFRenderer renders a recipe card as a PDF document.
// Images are not embedded; the image URL is printed instead.
type PDFRenderer struct {
	opts options
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(opts ...Option) *PDFRenderer {
	return &PDFRenderer{opts: newOptions(opts)}
}

// Render lays out title, facts, ingredients and numbered steps on A4.
func (r *PDFRenderer) Render(recipe core.ParsedRecipe) ([]byte, error) {
	mult, servings := r.opts.multiplier(recipe)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title(recipe), true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; accented recipe text goes through the translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(title(recipe)), "", "L", false)
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	if t := tags(recipe); len(t) > 0 {
		pdf.MultiCell(0, 5, tr(strings.Join(t, " - ")), "", "L", false)
	}
	if f := facts(recipe, servings); len(f) > 0 {
		pdf.MultiCell(0, 5, tr(strings.Join(f, "   ")), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if lines := ingredientLines(recipe, mult); len(lines) > 0 {
		heading(pdf, tr("Ingredients"))
		pdf.SetFont("Helvetica", "", 10)
		for _, l := range lines {
			pdf.MultiCell(0, 5, tr("• "+l), "", "L", false)
		}
		pdf.Ln(3)
	}
	if steps := recipe.StepLines(); len(steps) > 0 {
		heading(pdf, tr("Steps"))
		pdf.SetFont("Helvetica", "", 10)
		for i, s := range steps {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, s)), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	if recipe.SourceURL != "" || recipe.ImageURL != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		if recipe.SourceURL != "" {
			pdf.MultiCell(0, 4, tr("Source: "+recipe.SourceURL), "", "L", false)
		}
		if recipe.ImageURL != "" {
			pdf.MultiCell(0, 4, tr("Image: "+recipe.ImageURL), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, text, "", "L", false)
	pdf.Ln(1)
}
