package monitor

// validLocations are the location names the synthetics backend accepts.
var validLocations = map[string]bool{
	"japan":          true,
	"india":          true,
	"singapore":      true,
	"australia_east": true,
	"united_kingdom": true,
	"germany":        true,
	"canada_east":    true,
	"brazil":         true,
	"us_east":        true,
	"us_west":        true,
}

// locationAliases map common shorthand to canonical names.
var locationAliases = map[string]string{
	"us-east-1": "us_east",
	"us-west-1": "us_west",
	"us-east":   "us_east",
	"us-west":   "us_west",
	"usa-east":  "us_east",
	"usa-west":  "us_west",
	"uk":        "united_kingdom",
	"australia": "australia_east",
	"canada":    "canada_east",
}

// DefaultLocation is substituted for anything unrecognized.
const DefaultLocation = "us_east"

// NormalizeLocations coerces user-supplied locations into the backend's
// accepted enumeration. Known aliases map to their canonical names; unknown
// values fall back to the default. A nil or empty input yields the default.
func NormalizeLocations(locations []string) []string {
	if len(locations) == 0 {
		return []string{DefaultLocation}
	}

	normalized := make([]string, 0, len(locations))
	for _, loc := range locations {
		switch {
		case validLocations[loc]:
			normalized = append(normalized, loc)
		case locationAliases[loc] != "":
			normalized = append(normalized, locationAliases[loc])
		default:
			normalized = append(normalized, DefaultLocation)
		}
	}
	return normalized
}
