package moderation

// DefaultTerms is the compiled-in abusive-term list. Deployments can replace
// it with a custom list loaded from disk (see storage.LoadTermList); either
// way the scanner receives the list as an immutable value at construction.
var DefaultTerms = []string{
	// personal abuse
	"idiot",
	"stupid",
	"moron",
	"fool",
	"loser",
	"dumb farmer",
	"hate you",
	"get lost",
	// scam / fraud bait common in crop trading groups
	"scam",
	"scammer",
	"fraud",
	"fake seeds",
	"fake fertilizer",
	"guaranteed profit",
	"double your money",
	"get rich quick",
	"free money",
	"click this link",
	"send payment now",
	"advance payment only",
	// harassment
	"kill you",
	"destroy your farm",
	"burn your crop",
}
