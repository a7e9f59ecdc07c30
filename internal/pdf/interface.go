package pdf

import (
	"context"
)

// PageCounter reports how many pages a pdf has.
type PageCounter interface {
	PageCount(ctx context.Context, pdfPath string) (int, error)
}

// PageRenderer writes one page of a pdf to an image file and returns its path.
type PageRenderer interface {
	RenderPage(ctx context.Context, pdfPath string, page int) (string, error)
}
