package resolve

import (
	"context"
	"errors"
)

// ErrSkipped ends resolution of the current item only.
var ErrSkipped = errors.New("item skipped")

// ErrCancelled aborts the entire batch. It propagates uninterrupted; decision
// memory writes made for earlier items stay committed.
var ErrCancelled = errors.New("resolution cancelled")

// Prompter is the injected interactive capability. A declined prompt
// (ok=false) means "cancel the current item", never a default choice.
type Prompter interface {
	// SelectOption presents options and returns the chosen index.
	SelectOption(ctx context.Context, title string, options []string) (choice int, ok bool, err error)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) (bool, error)
}
