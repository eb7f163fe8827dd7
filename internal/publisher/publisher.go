package publisher

import (
	"context"

	"github.com/kentaogata/idea-digest/internal/report"
)

// Publisher delivers a finished report to some output destination.
type Publisher interface {
	Publish(ctx context.Context, rep *report.Report) error
}
