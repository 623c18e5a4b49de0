package selector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Decode parses a raw model answer into Output. A surrounding markdown code
// fence is tolerated; anything else that is not exactly one JSON object with a
// selectedClauses array is rejected.
func Decode(raw string) (Output, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return Output{}, fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}

	var payload struct {
		SelectedClauses *[]string `json:"selectedClauses"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Output{}, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedOutput)
	}
	if payload.SelectedClauses == nil {
		return Output{}, fmt.Errorf("%w: missing selectedClauses", ErrMalformedOutput)
	}

	return Output{SelectedClauses: *payload.SelectedClauses}, nil
}

func stripCodeFence(raw string) string {
	response := strings.TrimSpace(raw)
	if strings.HasPrefix(response, "```") && strings.HasSuffix(response, "```") {
		lines := strings.Split(response, "\n")
		if len(lines) < 2 {
			return ""
		}
		response = strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
	}
	return response
}
