// Package sink writes assembled sheets to their destinations. Both writers
// consume the same ordered sheet slice and stringify cells identically.
package sink

import (
	"context"

	"vmexport/internal/export"
)

// Sink is a destination for one run's sheets. Any write error is fatal to
// the run: a half-written export has no meaningful partial state.
type Sink interface {
	Write(ctx context.Context, sheets []export.Sheet) error
}
