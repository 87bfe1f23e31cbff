package entities

import "sort"

// Community is a key of a topical community.
type Community string

// DefaultCommunity is used when a post is created without community.
const DefaultCommunity Community = "general"

// nolint:gochecknoglobals
var communities = map[Community]string{
	"general":     "Γενικά",
	"technologia": "Τεχνολογία",
	"politiki":    "Πολιτική",
	"athlitika":   "Αθλητικά",
	"psichagogia": "Ψυχαγωγία",
	"oikonomia":   "Οικονομία",
	"ekpaideysi":  "Εκπαίδευση",
	"ygeia":       "Υγεία",
	"koinonia":    "Κοινωνία",
	"epistimi":    "Επιστήμη",
}

// Valid returns true if the community is known.
func (c Community) Valid() bool {
	_, ok := communities[c]
	return ok
}

// DisplayName returns greek name of the community or the key itself if community is unknown.
func (c Community) DisplayName() string {
	if v, ok := communities[c]; ok {
		return v
	}

	return string(c)
}

// Communities returns all known communities sorted by key, general goes first.
func Communities() []Community {
	out := make([]Community, 0, len(communities))
	for k := range communities {
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i] == DefaultCommunity || out[j] == DefaultCommunity {
			return out[i] == DefaultCommunity
		}
		return out[i] < out[j]
	})

	return out
}
