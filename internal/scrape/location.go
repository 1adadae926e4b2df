package scrape

import (
	"regexp"
	"strings"
)

// locationAliases maps common shorthand to canonical names.
var locationAliases = map[string]string{
	"sf":             "San Francisco",
	"la":             "Los Angeles",
	"nyc":            "New York",
	"ny":             "New York",
	"dc":             "Washington DC",
	"chi":            "Chicago",
	"philly":         "Philadelphia",
	"remote":         "Remote",
	"work from home": "Remote",
	"wfh":            "Remote",
	"telecommute":    "Remote",
}

var stateAbbrevs = map[string]string{
	"ca": "California", "ny": "New York", "tx": "Texas",
	"fl": "Florida", "il": "Illinois", "pa": "Pennsylvania",
	"oh": "Ohio", "mi": "Michigan", "ga": "Georgia",
	"nc": "North Carolina", "nj": "New Jersey", "va": "Virginia",
	"wa": "Washington", "ma": "Massachusetts", "in": "Indiana",
	"az": "Arizona", "tn": "Tennessee", "mo": "Missouri",
	"md": "Maryland", "wi": "Wisconsin", "mn": "Minnesota",
	"co": "Colorado", "al": "Alabama", "la": "Louisiana",
	"ky": "Kentucky", "or": "Oregon", "ok": "Oklahoma",
	"ct": "Connecticut", "ut": "Utah", "ia": "Iowa",
	"nv": "Nevada", "ar": "Arkansas", "ms": "Mississippi",
	"ks": "Kansas", "ne": "Nebraska", "nm": "New Mexico",
	"id": "Idaho", "wv": "West Virginia", "nh": "New Hampshire",
	"hi": "Hawaii", "me": "Maine", "ri": "Rhode Island",
	"mt": "Montana", "de": "Delaware", "sd": "South Dakota",
	"ak": "Alaska", "nd": "North Dakota", "dc": "Washington DC",
	"vt": "Vermont", "wy": "Wyoming",
}

var remoteIndicators = []string{
	"remote", "work from home", "wfh", "telecommute",
	"anywhere", "distributed", "virtual",
}

var (
	spacesRe       = regexp.MustCompile(`\s+`)
	locationCharRe = regexp.MustCompile(`[^\w\s,.\-]`)
)

// NormalizeLocation cleans a raw location string into canonical form:
// aliases resolved, "City, ST" expanded to the full state name, single
// tokens title-cased. Empty input returns "".
func NormalizeLocation(location string) string {
	if location == "" {
		return ""
	}

	loc := strings.ToLower(strings.TrimSpace(location))
	loc = spacesRe.ReplaceAllString(loc, " ")
	loc = locationCharRe.ReplaceAllString(loc, "")

	if canonical, ok := locationAliases[loc]; ok {
		return canonical
	}

	parts := strings.Split(loc, ",")
	if len(parts) >= 2 {
		city := titleCase(strings.TrimSpace(parts[0]))
		statePart := strings.TrimSpace(parts[1])

		if state, ok := stateAbbrevs[statePart]; ok {
			return city + ", " + state
		}
		return city + ", " + titleCase(statePart)
	}

	if state, ok := stateAbbrevs[loc]; ok {
		return state
	}

	return titleCase(loc)
}

// IsRemoteLocation reports whether the location text indicates remote work.
func IsRemoteLocation(location string) bool {
	if location == "" {
		return false
	}

	loc := strings.ToLower(location)
	for _, indicator := range remoteIndicators {
		if strings.Contains(loc, indicator) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
