package pdf

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/pdfreview/pkg/logger"
)

// Counter reads the page count with pdfcpu, without rasterizing anything.
type Counter struct {
	logger *logger.Logger
}

func NewCounter(logger *logger.Logger) *Counter {
	return &Counter{logger: logger}
}

func (c *Counter) PageCount(ctx context.Context, pdfPath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n, err := api.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages of %s: %w", pdfPath, err)
	}

	c.logger.Debug("%s has %d pages", pdfPath, n)
	return n, nil
}
