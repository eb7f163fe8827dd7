package publisher

import (
	"context"
	"fmt"

	"github.com/kentaogata/idea-digest/internal/report"
)

// StdoutPublisher prints the report to stdout.
type StdoutPublisher struct{}

func NewStdoutPublisher() *StdoutPublisher {
	return &StdoutPublisher{}
}

func (p *StdoutPublisher) Publish(_ context.Context, rep *report.Report) error {
	fmt.Print(rep.PlainText())
	return nil
}
