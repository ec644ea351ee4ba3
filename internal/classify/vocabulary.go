package classify

import "strings"

// Built-in vocabularies for the lyric detector. Config can extend both
// lists; terms are matched against normalized segment text.

var defaultPoeticMarkers = []string{
	"love", "heart", "baby", "dream", "dreams", "night", "dance", "dancing",
	"fire", "shine", "forever", "soul", "sky", "tonight", "rain", "cry",
	"fly", "stars", "moon", "moonlight", "burn", "light", "angel", "kiss",
	"darling", "lonely", "tears", "heaven", "wild", "free",
}

var defaultMusicalInterjections = []string{
	"la", "na", "oh", "ooh", "oohs", "whoa", "yeah", "hey", "mmm", "mm",
	"ah", "da", "doo", "dum", "sha", "ba", "bop", "hmm",
}

// Vocabulary holds the term sets the lyric detector scores against.
type Vocabulary struct {
	poetic        map[string]struct{}
	interjections map[string]struct{}
}

// NewVocabulary builds the detector vocabulary from the built-in lists plus
// any configured extensions. Terms are lowercased and deduplicated.
func NewVocabulary(extraPoetic, extraInterjections []string) Vocabulary {
	return Vocabulary{
		poetic:        termSet(defaultPoeticMarkers, extraPoetic),
		interjections: termSet(defaultMusicalInterjections, extraInterjections),
	}
}

func termSet(base, extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(base)+len(extra))
	for _, lists := range [][]string{base, extra} {
		for _, term := range lists {
			cleaned := strings.ToLower(strings.TrimSpace(term))
			if cleaned == "" {
				continue
			}
			set[cleaned] = struct{}{}
		}
	}
	return set
}

// PoeticHits counts words in the normalized text present in the poetic set.
func (v Vocabulary) PoeticHits(normalized string) int {
	return v.countHits(normalized, v.poetic)
}

// InterjectionHits counts words in the normalized text present in the
// musical interjection set.
func (v Vocabulary) InterjectionHits(normalized string) int {
	return v.countHits(normalized, v.interjections)
}

func (v Vocabulary) countHits(normalized string, set map[string]struct{}) int {
	if len(set) == 0 || normalized == "" {
		return 0
	}
	hits := 0
	for _, word := range strings.Fields(normalized) {
		if _, ok := set[word]; ok {
			hits++
		}
	}
	return hits
}
