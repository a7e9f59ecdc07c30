package pdf

import (
	"context"
	"errors"

	"github.com/kpauljoseph/pdfreview/pkg/logger"
)

// FallbackCounter asks each counter in turn until one succeeds.
type FallbackCounter struct {
	counters []PageCounter
	logger   *logger.Logger
}

func NewFallbackCounter(logger *logger.Logger, counters ...PageCounter) *FallbackCounter {
	return &FallbackCounter{counters: counters, logger: logger}
}

func (f *FallbackCounter) PageCount(ctx context.Context, pdfPath string) (int, error) {
	lastErr := errors.New("no page counter configured")
	for _, c := range f.counters {
		n, err := c.PageCount(ctx, pdfPath)
		if err == nil {
			return n, nil
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		f.logger.Debug("Page count failed, trying next reader: %v", err)
		lastErr = err
	}
	return 0, lastErr
}
