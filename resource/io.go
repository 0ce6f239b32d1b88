package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader so section streams drawn from a
// backend respect the controller's IO limit.
type RateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller
}

// NewRateLimitedReader creates a new RateLimitedReader.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	return &RateLimitedReader{
		ctx: ctx,
		r:   r,
		rc:  rc,
	}
}

func (r *RateLimitedReader) Read(p []byte) (n int, err error) {
	// The eventual read size is unknown, so reserve for the whole buffer.
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}

	return r.r.Read(p)
}

// RateLimitedWriter wraps an io.Writer so localized downloads respect the
// controller's IO limit.
type RateLimitedWriter struct {
	ctx context.Context
	w   io.Writer
	rc  *Controller
}

// NewRateLimitedWriter creates a new RateLimitedWriter.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *RateLimitedWriter {
	return &RateLimitedWriter{
		ctx: ctx,
		w:   w,
		rc:  rc,
	}
}

func (w *RateLimitedWriter) Write(p []byte) (n int, err error) {
	if err := w.rc.AcquireIO(w.ctx, len(p)); err != nil {
		return 0, err
	}

	return w.w.Write(p)
}
