// Package selector defines the contract for choosing NDA clauses from free-text
// conversation context, plus the prompt and output handling shared by the
// model-backed implementations.
package selector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

var (
	// ErrSelectionFailed wraps every error a Selector returns.
	ErrSelectionFailed = errors.New("clause selection failed")
	// ErrMalformedOutput is returned when the model answer does not match Output.
	ErrMalformedOutput = fmt.Errorf("%w: malformed model output", ErrSelectionFailed)
)

// Selector maps conversation context to the names of relevant clauses.
// The returned names may be unordered, repeated or unknown to the library.
type Selector interface {
	Select(ctx context.Context, conversationContext string) ([]string, error)
}

// Func adapts a plain function to the Selector interface.
type Func func(ctx context.Context, conversationContext string) ([]string, error)

func (f Func) Select(ctx context.Context, conversationContext string) ([]string, error) {
	return f(ctx, conversationContext)
}

// Output is the structured answer expected from the model.
type Output struct {
	SelectedClauses []string `json:"selectedClauses" jsonschema_description:"The list of selected NDA clauses relevant to the conversation context."`
}

// Fail wraps err as a selection failure attributed to the named backend.
func Fail(backend string, err error) error {
	if errors.Is(err, ErrSelectionFailed) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrSelectionFailed, backend, err)
}

// Schema returns the JSON schema of Output.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&Output{})
	s.ID = ""
	s.Version = ""
	s.Title = "SelectNdaClausesOutput"
	return s
}

// SchemaJSON returns Schema encoded as JSON.
func SchemaJSON() (json.RawMessage, error) {
	data, err := json.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection schema: %w", err)
	}
	return data, nil
}
