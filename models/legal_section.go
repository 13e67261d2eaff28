package models

// Domain represents the classification tag of a legal section
type Domain string

const (
	DomainCriminal       Domain = "Criminal"
	DomainProperty       Domain = "Property"
	DomainCyber          Domain = "Cyber"
	DomainFamily         Domain = "Family"
	DomainLabour         Domain = "Labour"
	DomainConstitutional Domain = "Constitutional"
	DomainConsumer       Domain = "Consumer"
	DomainUnknown        Domain = "Unknown"
)

// Domains lists every valid domain tag
var Domains = []Domain{
	DomainCriminal,
	DomainProperty,
	DomainCyber,
	DomainFamily,
	DomainLabour,
	DomainConstitutional,
	DomainConsumer,
	DomainUnknown,
}

// Valid reports whether d belongs to the closed domain set
func (d Domain) Valid() bool {
	for _, v := range Domains {
		if d == v {
			return true
		}
	}
	return false
}

// LegalSection represents one addressable section of a statute
type LegalSection struct {
	ID           string  `json:"id"`
	Act          string  `json:"act"`
	Section      string  `json:"section"`
	Text         string  `json:"text"`
	Domain       *Domain `json:"domain,omitempty"`
	Jurisdiction *string `json:"jurisdiction,omitempty"`
	State        *string `json:"state,omitempty"`
	SourceLink   *string `json:"sourceLink,omitempty"`
}

// ScoredCandidate pairs a fetched section with its relevance score
type ScoredCandidate struct {
	Section LegalSection `json:"section"`
	Score   int          `json:"score"`
}
