package selector

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/grovetools/ndagen/pkg/nda"
)

// DefaultSystemPrompt frames the model's task when no custom prompt is configured.
const DefaultSystemPrompt = `You are an AI assistant that selects relevant clauses from an NDA template based on the provided conversation context.`

var promptTemplate = template.Must(template.New("select").Parse(`The NDA template includes the following clauses:
{{- range .Clauses}}
- {{.}}
{{- end}}

Given the following conversation context, identify and return only the clauses that are most relevant. Return the clauses as a JSON array.

Conversation Context: {{.Context}}
`))

// BuildPrompt renders the user prompt for the given conversation context. The
// system prompt is sent separately by each backend.
func BuildPrompt(conversationContext string) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		Clauses []nda.ClauseName
		Context string
	}{
		Clauses: nda.Clauses(),
		Context: conversationContext,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render selection prompt: %w", err)
	}
	return buf.String(), nil
}
