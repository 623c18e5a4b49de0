package nda

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the effective date format used in the preamble.
const DateLayout = "January 2, 2006"

// ErrInvalidParty is returned when party data is missing a required field.
var ErrInvalidParty = errors.New("invalid party data")

// PartyData holds the parties and effective date interpolated into a document.
type PartyData struct {
	DisclosingParty string
	ReceivingParty  string
	EffectiveDate   time.Time
}

// Validate checks that both names and the effective date are present.
func (p PartyData) Validate() error {
	var missing []string
	if strings.TrimSpace(p.DisclosingParty) == "" {
		missing = append(missing, "disclosing party")
	}
	if strings.TrimSpace(p.ReceivingParty) == "" {
		missing = append(missing, "receiving party")
	}
	if p.EffectiveDate.IsZero() {
		missing = append(missing, "effective date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidParty, strings.Join(missing, ", "))
	}
	return nil
}

// Included resolves the clauses a document will contain: the default set
// plus every known selected clause, in canonical order and without duplicates.
func Included(selected []string) []ClauseName {
	include := make(map[ClauseName]bool, len(defaultClauses)+len(selected))
	for name := range defaultClauses {
		include[name] = true
	}
	for _, s := range selected {
		include[ClauseName(s)] = true
	}

	var ordered []ClauseName
	for _, name := range canonicalOrder {
		if include[name] {
			ordered = append(ordered, name)
		}
	}
	return ordered
}

// Unknown returns the selected names that do not match any clause, in input
// order and deduplicated.
func Unknown(selected []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range selected {
		if IsKnown(s) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Generate assembles the full agreement text for the given parties and
// selected clause names. Unknown names are ignored. The result is a pure
// function of its inputs.
func Generate(data PartyData, selected []string) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(preamble(data))

	for i, name := range Included(selected) {
		text, _ := Render(name, i+1, data)
		b.WriteString("\n")
		b.WriteString(text)
	}

	b.WriteString(signatureBlock(data))
	return strings.TrimSpace(b.String()), nil
}

func preamble(data PartyData) string {
	return fmt.Sprintf(`NON-DISCLOSURE AGREEMENT

This Non-Disclosure Agreement (the "Agreement") is entered into as of %s (the "Effective Date"), by and between:

Disclosing Party: %s
Receiving Party: %s

(Each, a "Party" and collectively, the "Parties").

In consideration of the mutual covenants contained herein, the Parties agree as follows:
`, data.EffectiveDate.Format(DateLayout), data.DisclosingParty, data.ReceivingParty)
}

func signatureBlock(data PartyData) string {
	return fmt.Sprintf(`
IN WITNESS WHEREOF, the Parties have executed this Agreement as of the Effective Date.

DISCLOSING PARTY:

By: _________________________
Name: %s


RECEIVING PARTY:

By: _________________________
Name: %s
`, data.DisclosingParty, data.ReceivingParty)
}
