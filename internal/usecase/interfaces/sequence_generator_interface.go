package interfaces

import "context"

//go:generate mockgen -source=sequence_generator_interface.go -destination=mocks/mock_sequence_generator.go -package=mock_interfaces

const (
	SequenceBudget  = "budget"
	SequenceInvoice = "invoice"
)

// ISequenceGenerator hands out document numbers. Numbers start at 1 per
// sequence name and are never reused.
type ISequenceGenerator interface {
	Next(ctx context.Context, name string) (int64, error)
	// Peek returns the number Next would hand out without consuming it.
	Peek(ctx context.Context, name string) (int64, error)
}
