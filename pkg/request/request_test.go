package request

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validRequest(t *testing.T) Request {
	t.Helper()
	date, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	return Request{
		DisclosingParty:     "Acme Inc.",
		ReceivingParty:      "John Doe",
		EffectiveDate:       date,
		ConversationContext: "Discussing a software licensing partnership.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr string
	}{
		{name: "valid", mutate: func(*Request) {}},
		{name: "missing disclosing", mutate: func(r *Request) { r.DisclosingParty = " " }, wantErr: "disclosing party name is required"},
		{name: "missing receiving", mutate: func(r *Request) { r.ReceivingParty = "" }, wantErr: "receiving party name is required"},
		{name: "missing date", mutate: func(r *Request) { r.EffectiveDate = Date{} }, wantErr: "an effective date is required"},
		{name: "context too short", mutate: func(r *Request) { r.ConversationContext = "short" }, wantErr: "at least 10"},
		{name: "context too long", mutate: func(r *Request) { r.ConversationContext = strings.Repeat("x", 501) }, wantErr: "at most 500"},
		{name: "context at upper bound", mutate: func(r *Request) { r.ConversationContext = strings.Repeat("é", 500) }},
		{name: "astral characters count once", mutate: func(r *Request) { r.ConversationContext = strings.Repeat("🤝", 500) }},
		{name: "astral characters over limit", mutate: func(r *Request) { r.ConversationContext = strings.Repeat("🤝", 501) }, wantErr: "at most 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	err := Request{}.Validate()
	require.ErrorIs(t, err, ErrInvalidRequest)
	for _, want := range []string{"disclosing", "receiving", "effective date", "conversation context"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-01-15 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), d.Time)
	assert.Equal(t, "2024-01-15", d.String())

	_, err = ParseDate("15/01/2024")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yml")
	content := `disclosing_party: Acme Inc.
receiving_party: John Doe
effective_date: 2024-01-15
conversation_context: We will exchange prototype designs and pricing.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	req, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc.", req.DisclosingParty)
	assert.Equal(t, "2024-01-15", req.EffectiveDate.String())
	require.NoError(t, req.Validate())

	party := req.Party()
	assert.Equal(t, "John Doe", party.ReceivingParty)
	assert.Equal(t, 2024, party.EffectiveDate.Year())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("effective_date: yesterday\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestDateRoundTripYAML(t *testing.T) {
	req := validRequest(t)
	out, err := yaml.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(out), "2024-01-15")

	var back Request
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, req, back)
}
