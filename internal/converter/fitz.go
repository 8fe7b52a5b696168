package converter

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// Slides are rendered at 150 DPI, which keeps projector-sized decks readable
// without producing multi-megabyte pages.
const renderDPI = 150

// FitzConverter rasterizes PDFs with MuPDF.
type FitzConverter struct{}

func NewFitzConverter() *FitzConverter { return &FitzConverter{} }

// Convert renders each page of the PDF at pdfPath into outDir as
// slide_1.png .. slide_N.png and returns the file names in order.
func (c *FitzConverter) Convert(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	names := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, renderDPI)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		name := SlideName(i + 1)
		f, err := os.Create(filepath.Join(outDir, name))
		if err != nil {
			return nil, err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// SlideName returns the file name for the 1-based page number.
func SlideName(page int) string {
	return fmt.Sprintf("slide_%d.png", page)
}
