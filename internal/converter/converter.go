package converter

import "context"

// Converter turns an uploaded PDF into one slide image per page, returning
// the produced file names in page order.
type Converter interface {
	Convert(ctx context.Context, pdfPath, outDir string) ([]string, error)
}
