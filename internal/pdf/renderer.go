package pdf

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/pdfreview/pkg/logger"
)

// Renderer rasterizes pdf pages with MuPDF into outputDir.
type Renderer struct {
	outputDir string
	logger    *logger.Logger
}

func NewRenderer(outputDir string, logger *logger.Logger) (*Renderer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Renderer{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// RenderPage writes page (zero based) of pdfPath as <name>_page_<n>.png,
// numbered from 1 like a pdf viewer does.
func (r *Renderer) RenderPage(ctx context.Context, pdfPath string, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if page < 0 || page >= doc.NumPage() {
		return "", fmt.Errorf("page %d out of range, %s has %d pages", page, pdfPath, doc.NumPage())
	}

	img, err := doc.Image(page)
	if err != nil {
		return "", fmt.Errorf("failed to extract image for page %d: %w", page, err)
	}

	baseName := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	imagePath := filepath.Join(r.outputDir, fmt.Sprintf("%s_page_%d.png", baseName, page+1))
	if err := saveImage(img, imagePath); err != nil {
		return "", fmt.Errorf("failed to save image for page %d: %w", page, err)
	}

	r.logger.Debug("Rendered page %d of %s to %s", page, pdfPath, imagePath)
	return imagePath, nil
}

// PageCount is the MuPDF view of the page count, for files pdfcpu rejects.
func (r *Renderer) PageCount(ctx context.Context, pdfPath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	return doc.NumPage(), nil
}

func saveImage(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func (r *Renderer) Cleanup() error {
	return os.RemoveAll(r.outputDir)
}
