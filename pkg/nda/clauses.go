package nda

import "fmt"

// ClauseName identifies one entry of the clause library.
type ClauseName string

const (
	ConfidentialInformationDefinition ClauseName = "Confidential Information Definition"
	NonUseAndNonDisclosure            ClauseName = "Non-Use and Non-Disclosure"
	ExclusionsFromConfidential        ClauseName = "Exclusions from Confidential Information"
	TermAndTermination                ClauseName = "Term and Termination"
	IntellectualProperty              ClauseName = "Intellectual Property"
	PermittedUse                      ClauseName = "Permitted Use"
	GoverningLawAndJurisdiction       ClauseName = "Governing Law and Jurisdiction"
	EntireAgreement                   ClauseName = "Entire Agreement"
)

// Renderer produces the body of a clause. The ordinal is the clause's
// position in the rendered document and is written as its leading label.
type Renderer func(ordinal int, data PartyData) string

// canonicalOrder fixes the render order, and therefore the numbering, of
// every clause in the library.
var canonicalOrder = []ClauseName{
	ConfidentialInformationDefinition,
	NonUseAndNonDisclosure,
	ExclusionsFromConfidential,
	PermittedUse,
	IntellectualProperty,
	TermAndTermination,
	GoverningLawAndJurisdiction,
	EntireAgreement,
}

// defaultClauses are included in every document regardless of selection.
var defaultClauses = map[ClauseName]bool{
	ConfidentialInformationDefinition: true,
	NonUseAndNonDisclosure:            true,
	ExclusionsFromConfidential:        true,
	TermAndTermination:                true,
	GoverningLawAndJurisdiction:       true,
	EntireAgreement:                   true,
}

var library = map[ClauseName]Renderer{
	ConfidentialInformationDefinition: fixed("Definition of Confidential Information",
		`"Confidential Information" means all non-public information disclosed by the Disclosing Party to the Receiving Party, whether orally or in writing, that is designated as confidential or that reasonably should be understood to be confidential given the nature of the information and the circumstances of disclosure.`),
	NonUseAndNonDisclosure: fixed("Non-Use and Non-Disclosure",
		`The Receiving Party agrees not to use any Confidential Information for any purpose except to evaluate and engage in discussions concerning a potential business relationship between the Parties. The Receiving Party agrees not to disclose any Confidential Information to third parties or to its employees, except to those employees who are required to have the information in order to evaluate or engage in discussions concerning the contemplated business relationship.`),
	ExclusionsFromConfidential: fixed("Exclusions",
		`Confidential Information does not include information that: (a) is or becomes generally available to the public other than as a result of a disclosure by the Receiving Party; (b) was in its possession or known by it prior to receipt from the Disclosing Party; (c) was rightfully disclosed to it without restriction by a third party; or (d) was independently developed without use of any Confidential Information of the Disclosing Party.`),
	TermAndTermination: fixed("Term",
		`The obligations of the Receiving Party under this Agreement shall survive for a period of five (5) years from the date of disclosure of the Confidential Information. The term of this Agreement shall be one (1) year from the Effective Date, unless terminated earlier by either Party with 30 days written notice.`),
	IntellectualProperty: fixed("Intellectual Property",
		`Nothing in this Agreement is intended to grant any rights to the Receiving Party under any patent, copyright, or other intellectual property right of the Disclosing Party, nor shall this Agreement grant the Receiving Party any rights in or to the Confidential Information except as expressly set forth herein.`),
	PermittedUse: fixed("Permitted Use",
		`The Receiving Party may use the Confidential Information solely for the purpose of evaluating a potential business relationship between the Parties. Any other use of the Confidential Information by the Receiving Party is strictly prohibited without the prior written consent of the Disclosing Party.`),
	GoverningLawAndJurisdiction: fixed("Governing Law",
		`This Agreement shall be governed by the laws of the State of Delaware, without regard to its conflict of laws principles. Any legal action or proceeding arising under this Agreement will be brought exclusively in the federal or state courts located in Delaware and the Parties irrevocably consent to the personal jurisdiction and venue therein.`),
	EntireAgreement: fixed("Entire Agreement",
		`This Agreement contains the entire agreement between the Parties with respect to the subject matter hereof and supersedes all prior and contemporaneous agreements, understandings, negotiations, and discussions, whether oral or in writing, of the Parties.`),
}

// fixed returns a renderer for a clause whose text does not depend on the parties.
func fixed(heading, text string) Renderer {
	return func(ordinal int, _ PartyData) string {
		return fmt.Sprintf("%d. **%s.** %s", ordinal, heading, text)
	}
}

// Clauses returns every clause name in canonical order.
func Clauses() []ClauseName {
	out := make([]ClauseName, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// Defaults returns the clauses that are always included, in canonical order.
func Defaults() []ClauseName {
	var out []ClauseName
	for _, name := range canonicalOrder {
		if defaultClauses[name] {
			out = append(out, name)
		}
	}
	return out
}

// IsDefault reports whether name is part of the mandatory clause set.
func IsDefault(name ClauseName) bool {
	return defaultClauses[name]
}

// IsKnown reports whether name matches a clause in the library exactly.
func IsKnown(name string) bool {
	_, ok := library[ClauseName(name)]
	return ok
}

// Render renders a single clause with the given ordinal.
func Render(name ClauseName, ordinal int, data PartyData) (string, bool) {
	r, ok := library[name]
	if !ok {
		return "", false
	}
	return r(ordinal, data), true
}
