package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/invoi/internal/invoice"
	"github.com/MrJamesThe3rd/invoi/internal/preview"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatPDF, FormatHTML}

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Result describes a written file.
type Result struct {
	Path   string
	Format Format
	Size   int64
}

// Service writes print-ready renderings of an invoice to disk.
type Service struct {
	page preview.Page
}

func NewService(page preview.Page) *Service {
	return &Service{page: page}
}

// Export renders inv at natural page size into outputDir. The file is named
// after the invoice number and sender.
func (s *Service) Export(ctx context.Context, inv invoice.Invoice, format Format, outputDir string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, preview.OutputName(inv, string(format)))

	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("creating file: %w", err)
	}

	doc := preview.NewDocument(inv)

	switch format {
	case FormatPDF:
		err = preview.RenderPDF(f, doc)
	case FormatHTML:
		err = preview.RenderHTML(f, doc, preview.LayoutFor(s.page, 1, preview.Print))
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing file: %w", closeErr)
	}

	if err != nil {
		os.Remove(path)
		return Result{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("checking output: %w", err)
	}

	return Result{Path: path, Format: format, Size: info.Size()}, nil
}

// Summary is a one-line description of an export for status messages.
func (s *Service) Summary(res Result) string {
	return fmt.Sprintf("%s written to %s (%s)", strings.ToUpper(string(res.Format)), res.Path, humanSize(res.Size))
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	return fmt.Sprintf("%.1f KiB", float64(n)/unit)
}
