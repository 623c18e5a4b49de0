// Package request holds the caller-side input for one agreement and the
// validation applied before anything is sent to a selector.
package request

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/grovetools/ndagen/pkg/nda"
	"gopkg.in/yaml.v3"
)

const (
	DateFormat = "2006-01-02"

	MinContextLength = 10
	MaxContextLength = 500
)

// ErrInvalidRequest is returned when a request fails validation.
var ErrInvalidRequest = errors.New("invalid request")

// Request is the full set of user input for one agreement.
type Request struct {
	DisclosingParty     string `yaml:"disclosing_party" json:"disclosing_party"`
	ReceivingParty      string `yaml:"receiving_party" json:"receiving_party"`
	EffectiveDate       Date   `yaml:"effective_date" json:"effective_date"`
	ConversationContext string `yaml:"conversation_context" json:"conversation_context"`
}

// Date is a calendar date written as YYYY-MM-DD.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateFormat)
}

// UnmarshalYAML accepts a YYYY-MM-DD scalar.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML writes the date as YYYY-MM-DD.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Validate reports every problem with the request at once.
func (r Request) Validate() error {
	var problems []string
	if strings.TrimSpace(r.DisclosingParty) == "" {
		problems = append(problems, "disclosing party name is required")
	}
	if strings.TrimSpace(r.ReceivingParty) == "" {
		problems = append(problems, "receiving party name is required")
	}
	if r.EffectiveDate.IsZero() {
		problems = append(problems, "an effective date is required")
	}
	// Length is in runes, so astral-plane characters count once each.
	switch n := utf8.RuneCountInString(r.ConversationContext); {
	case n < MinContextLength:
		problems = append(problems, fmt.Sprintf("conversation context must be at least %d characters", MinContextLength))
	case n > MaxContextLength:
		problems = append(problems, fmt.Sprintf("conversation context must be at most %d characters", MaxContextLength))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}

// Party returns the party data used to render the agreement.
func (r Request) Party() nda.PartyData {
	return nda.PartyData{
		DisclosingParty: r.DisclosingParty,
		ReceivingParty:  r.ReceivingParty,
		EffectiveDate:   r.EffectiveDate.Time,
	}
}

// Load reads a request from a YAML file.
func Load(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &req, nil
}
