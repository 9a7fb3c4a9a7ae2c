package domain

// Lookup list names persisted in the settings bucket.
const (
	LookupSizes   = "sizes"
	LookupSources = "sources"
	LookupReasons = "reasons"
)

var LookupNames = []string{LookupSizes, LookupSources, LookupReasons}

// Hardcoded defaults used when nothing is persisted or the stored
// value fails to parse.
var (
	DefaultSizes = []float64{32, 40, 43, 50, 55, 65, 75}

	DefaultSources = []string{
		"Retail Return", "Warranty", "Refurb Stock", "Customer Drop-off",
	}

	DefaultReasons = []string{
		"No Power", "Cracked Screen", "No Picture", "Audio Issue",
		"Customer Remorse", "Dead Pixels",
	}
)
