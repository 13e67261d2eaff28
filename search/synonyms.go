package search

// synonyms maps a canonical lowercase term to related statute vocabulary.
// Order within a list is significant: it is the order expansion terms are
// emitted in.
var synonyms = map[string][]string{
	// offences against property
	"theft":     {"stealing", "robbery", "snatching", "pickpocketing", "burglary"},
	"stealing":  {"theft", "robbery", "snatching"},
	"robbery":   {"theft", "dacoity", "extortion", "snatching"},
	"snatching": {"theft", "robbery"},
	"burglary":  {"house-breaking", "lurking house-trespass", "theft"},
	"fraud":     {"cheating", "dishonestly", "deception", "forgery", "misappropriation"},
	"cheating":  {"fraud", "deception", "dishonestly inducing"},
	"scam":      {"cheating", "fraud", "deception"},
	"forgery":   {"forged", "false document", "counterfeit"},
	"extortion": {"ransom", "threat", "robbery"},
	"trespass":  {"criminal trespass", "house-trespass", "encroachment"},

	// offences against the body
	"murder":     {"culpable homicide", "homicide", "killing", "death"},
	"killing":    {"murder", "culpable homicide", "homicide"},
	"assault":    {"criminal force", "hurt", "attack", "grievous hurt"},
	"attack":     {"assault", "criminal force", "hurt"},
	"hurt":       {"grievous hurt", "assault", "injury"},
	"rape":       {"sexual assault", "sexual intercourse", "consent"},
	"harassment": {"stalking", "outraging modesty", "sexual harassment", "insult"},
	"stalking":   {"harassment", "follows", "contacts"},
	"kidnapping": {"abduction", "kidnap", "wrongful confinement"},
	"abduction":  {"kidnapping", "kidnap"},
	"suicide":    {"abetment of suicide", "attempt to commit suicide"},
	"acid":       {"acid attack", "grievous hurt"},

	// family and matrimonial
	"dowry":       {"cruelty", "dowry death", "streedhan"},
	"cruelty":     {"dowry", "harassment", "domestic violence"},
	"divorce":     {"dissolution of marriage", "judicial separation", "matrimonial"},
	"marriage":    {"matrimonial", "spouse", "husband", "wife", "bigamy"},
	"maintenance": {"alimony", "wife", "children", "parents"},
	"alimony":     {"maintenance", "permanent alimony"},
	"custody":     {"guardian", "guardianship", "minor"},
	"domestic":    {"domestic violence", "cruelty", "shared household"},

	// property and tenancy
	"tenant":      {"landlord", "lease", "lessee", "eviction", "rent", "tenancy"},
	"landlord":    {"tenant", "lessor", "lease", "eviction", "rent"},
	"rent":        {"tenant", "landlord", "lease", "arrears"},
	"eviction":    {"tenant", "landlord", "possession", "ejectment"},
	"lease":       {"lessee", "lessor", "tenant", "landlord"},
	"land":        {"immovable property", "possession", "title", "encroachment"},
	"property":    {"immovable property", "movable property", "possession", "title", "transfer"},
	"will":        {"testament", "succession", "inheritance", "legacy"},
	"inheritance": {"succession", "heir", "will"},

	// cyber
	"hacking":  {"unauthorised access", "computer", "computer resource", "data theft"},
	"cyber":    {"computer", "electronic record", "computer resource", "data"},
	"phishing": {"identity theft", "cheating by personation", "computer resource"},
	"online":   {"electronic", "computer resource", "electronic record"},
	"obscene":  {"obscenity", "sexually explicit", "electronic form"},

	// labour and employment
	"salary":      {"wages", "payment of wages", "remuneration"},
	"wages":       {"salary", "minimum wages", "remuneration"},
	"employer":    {"employee", "workman", "establishment"},
	"employee":    {"workman", "employer", "worker"},
	"termination": {"retrenchment", "dismissal", "discharge"},
	"gratuity":    {"retirement", "employee", "payment"},

	// consumer
	"consumer":  {"deficiency in service", "unfair trade practice", "defect", "goods"},
	"refund":    {"compensation", "deficiency in service", "consumer"},
	"defective": {"defect", "deficiency", "goods"},

	// procedure and public order
	"bail":       {"bailable", "non-bailable", "anticipatory bail", "surety"},
	"arrest":     {"custody", "warrant", "detention", "police"},
	"police":     {"officer in charge", "investigation", "arrest"},
	"fir":        {"first information", "information in cognizable cases", "complaint"},
	"complaint":  {"first information", "magistrate", "cognizance"},
	"defamation": {"imputation", "reputation", "slander", "libel"},
	"bribe":      {"gratification", "corruption", "public servant"},
	"corruption": {"gratification", "bribe", "public servant"},
	"drunk":      {"intoxication", "intoxicated", "liquor"},
	"accident":   {"rash", "negligent", "negligence", "death by negligence"},
	"negligence": {"rash", "negligent", "carelessness"},
	"threat":     {"criminal intimidation", "intimidation", "threatens"},
	"riot":       {"rioting", "unlawful assembly", "affray"},
}

// stopWords are generic terms excluded from expansion and direct matching
var stopWords = map[string]struct{}{
	"problem": {},
	"issue":   {},
	"law":     {},
	"act":     {},
	"section": {},
	"case":    {},
	"cases":   {},
	"for":     {},
	"and":     {},
	"the":     {},
	"of":      {},
}

// Synonyms returns the related terms for a lowercase term. Unknown terms yield
// nil. The returned slice is a copy.
func Synonyms(term string) []string {
	syns, ok := synonyms[term]
	if !ok {
		return nil
	}
	out := make([]string, len(syns))
	copy(out, syns)
	return out
}

// IsStopWord reports whether term is excluded from expansion and scoring
func IsStopWord(term string) bool {
	_, ok := stopWords[term]
	return ok
}

// Expansion maps each non-stop-word token of q to its synonyms
type Expansion map[string][]string

// Expand builds the expansion set for q's tokens. Tokens without synonyms map
// to an empty list.
func Expand(q Query) Expansion {
	exp := make(Expansion, len(q.Tokens))
	for _, tok := range q.Tokens {
		if IsStopWord(tok) {
			continue
		}
		if _, seen := exp[tok]; seen {
			continue
		}
		exp[tok] = Synonyms(tok)
	}
	return exp
}
