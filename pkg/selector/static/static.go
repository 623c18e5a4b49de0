// Package static provides a Selector that ignores the conversation context and
// returns a fixed list of clause names.
package static

import (
	"context"

	"github.com/grovetools/ndagen/pkg/selector"
)

// Selector returns the same clause names for every request.
type Selector struct {
	clauses []string
}

func New(clauses []string) *Selector {
	cp := make([]string, len(clauses))
	copy(cp, clauses)
	return &Selector{clauses: cp}
}

// Select returns a copy of the configured clause names.
func (s *Selector) Select(ctx context.Context, _ string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, selector.Fail("static", err)
	}
	out := make([]string, len(s.clauses))
	copy(out, s.clauses)
	return out, nil
}

var _ selector.Selector = (*Selector)(nil)
