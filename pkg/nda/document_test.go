package nda

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clauseLine = regexp.MustCompile(`(?m)^(\d+)\. \*\*([^*]+)\.\*\*`)

func acme() PartyData {
	return PartyData{
		DisclosingParty: "Acme Inc.",
		ReceivingParty:  "John Doe",
		EffectiveDate:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

// headings returns the numbered clause headings in document order and checks
// that the numbering runs 1..k without gaps.
func headings(t *testing.T, doc string) []string {
	t.Helper()
	var out []string
	for i, m := range clauseLine.FindAllStringSubmatch(doc, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		require.Equal(t, i+1, n, "clause numbering must be contiguous")
		out = append(out, m[2])
	}
	return out
}

func TestGenerateDefaultsOnly(t *testing.T) {
	doc, err := Generate(acme(), nil)
	require.NoError(t, err)

	want := `NON-DISCLOSURE AGREEMENT

This Non-Disclosure Agreement (the "Agreement") is entered into as of January 15, 2024 (the "Effective Date"), by and between:

Disclosing Party: Acme Inc.
Receiving Party: John Doe

(Each, a "Party" and collectively, the "Parties").

In consideration of the mutual covenants contained herein, the Parties agree as follows:

1. **Definition of Confidential Information.** "Confidential Information" means all non-public information disclosed by the Disclosing Party to the Receiving Party, whether orally or in writing, that is designated as confidential or that reasonably should be understood to be confidential given the nature of the information and the circumstances of disclosure.
2. **Non-Use and Non-Disclosure.** The Receiving Party agrees not to use any Confidential Information for any purpose except to evaluate and engage in discussions concerning a potential business relationship between the Parties. The Receiving Party agrees not to disclose any Confidential Information to third parties or to its employees, except to those employees who are required to have the information in order to evaluate or engage in discussions concerning the contemplated business relationship.
3. **Exclusions.** Confidential Information does not include information that: (a) is or becomes generally available to the public other than as a result of a disclosure by the Receiving Party; (b) was in its possession or known by it prior to receipt from the Disclosing Party; (c) was rightfully disclosed to it without restriction by a third party; or (d) was independently developed without use of any Confidential Information of the Disclosing Party.
4. **Term.** The obligations of the Receiving Party under this Agreement shall survive for a period of five (5) years from the date of disclosure of the Confidential Information. The term of this Agreement shall be one (1) year from the Effective Date, unless terminated earlier by either Party with 30 days written notice.
5. **Governing Law.** This Agreement shall be governed by the laws of the State of Delaware, without regard to its conflict of laws principles. Any legal action or proceeding arising under this Agreement will be brought exclusively in the federal or state courts located in Delaware and the Parties irrevocably consent to the personal jurisdiction and venue therein.
6. **Entire Agreement.** This Agreement contains the entire agreement between the Parties with respect to the subject matter hereof and supersedes all prior and contemporaneous agreements, understandings, negotiations, and discussions, whether oral or in writing, of the Parties.
IN WITNESS WHEREOF, the Parties have executed this Agreement as of the Effective Date.

DISCLOSING PARTY:

By: _________________________
Name: Acme Inc.


RECEIVING PARTY:

By: _________________________
Name: John Doe`

	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSelection(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{
			name:     "intellectual property sits before term",
			selected: []string{"Intellectual Property"},
			want: []string{
				"Definition of Confidential Information",
				"Non-Use and Non-Disclosure",
				"Exclusions",
				"Intellectual Property",
				"Term",
				"Governing Law",
				"Entire Agreement",
			},
		},
		{
			name:     "unknown names are dropped",
			selected: []string{"Bogus Clause", "Permitted Use"},
			want: []string{
				"Definition of Confidential Information",
				"Non-Use and Non-Disclosure",
				"Exclusions",
				"Permitted Use",
				"Term",
				"Governing Law",
				"Entire Agreement",
			},
		},
		{
			name: "all clauses in reverse order",
			selected: []string{
				"Entire Agreement", "Governing Law and Jurisdiction", "Permitted Use",
				"Intellectual Property", "Term and Termination",
				"Exclusions from Confidential Information", "Non-Use and Non-Disclosure",
				"Confidential Information Definition",
			},
			want: []string{
				"Definition of Confidential Information",
				"Non-Use and Non-Disclosure",
				"Exclusions",
				"Permitted Use",
				"Intellectual Property",
				"Term",
				"Governing Law",
				"Entire Agreement",
			},
		},
		{
			name:     "duplicates are absorbed",
			selected: []string{"Permitted Use", "Permitted Use", "Entire Agreement"},
			want: []string{
				"Definition of Confidential Information",
				"Non-Use and Non-Disclosure",
				"Exclusions",
				"Permitted Use",
				"Term",
				"Governing Law",
				"Entire Agreement",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Generate(acme(), tt.selected)
			require.NoError(t, err)
			assert.Equal(t, tt.want, headings(t, doc))
			assert.NotContains(t, doc, "Bogus Clause")
		})
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	selected := []string{"Permitted Use", "Intellectual Property"}
	first, err := Generate(acme(), selected)
	require.NoError(t, err)
	second, err := Generate(acme(), selected)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Permitted Use", "Intellectual Property"}, selected, "input must not be modified")
}

func TestGenerateInvalidParty(t *testing.T) {
	data := acme()
	data.ReceivingParty = "  "
	data.EffectiveDate = time.Time{}

	doc, err := Generate(data, nil)
	require.ErrorIs(t, err, ErrInvalidParty)
	assert.Empty(t, doc)
	assert.Contains(t, err.Error(), "receiving party")
	assert.Contains(t, err.Error(), "effective date")
}

func TestIncludedAndUnknown(t *testing.T) {
	assert.Equal(t, Defaults(), Included(nil))
	assert.Equal(t, []string{"Bogus", "Other"}, Unknown([]string{"Bogus", "Permitted Use", "Other", "Bogus"}))
	assert.Empty(t, Unknown([]string{"Entire Agreement"}))
	assert.False(t, IsKnown("permitted use"), "matching is exact")
}

func TestLibraryCoversCanonicalOrder(t *testing.T) {
	require.Len(t, Clauses(), 8)
	require.Len(t, Defaults(), 6)
	for i, name := range Clauses() {
		text, ok := Render(name, i+1, acme())
		require.True(t, ok, "missing renderer for %q", name)
		assert.True(t, strings.HasPrefix(text, strconv.Itoa(i+1)+". **"), text)
	}
	assert.False(t, IsDefault(PermittedUse))
	assert.False(t, IsDefault(IntellectualProperty))
}
