// Package sentiment implements the deterministic half of the hybrid
// comment classifier: a weighted keyword rule engine, recency weighting,
// and the weighted student-score aggregation. It performs no I/O.
package sentiment

// Lexicon weight classes. College-specific idioms outweigh generic
// sentiment words because they are far stronger signals in student
// apartment reviews ("thin walls" beats a stray "good").
const (
	weightCollege  = 3
	weightStrong   = 2
	weightModerate = 1
)

type entry struct {
	phrase string
	weight float64 // signed
}

// College-specific phrases common in student apartment reviews
var collegeNegative = []string{
	"sketchy", "loud parties", "thin walls", "far from campus",
	"overpriced", "landlord sucks", "avoid", "scam", "dirty",
	"roaches", "mold", "broken ac", "parking nightmare",
}

var collegePositive = []string{
	"close to campus", "quiet", "great location", "worth it",
	"responsive landlord", "clean", "spacious", "good deal",
	"highly recommend", "love living here", "clutch",
}

var strongNegative = []string{
	"worst", "terrible", "awful", "disgusting", "avoid", "nightmare",
	"scam", "shady", "broken", "horrible", "trash", "sucks", "hate",
	"miserable", "brutal", "never again", "rip off",
}

var moderateNegative = []string{
	"bad", "issue", "problem", "annoying", "inconvenient", "sketchy",
	"loud", "noisy", "far", "expensive", "old", "small",
	"complaint", "disappointing", "meh", "mediocre",
}

var strongPositive = []string{
	"best", "amazing", "perfect", "excellent", "love", "great",
	"wonderful", "fantastic", "highly recommend", "awesome", "clutch",
	"gem", "steal", "couldn't be happier",
}

var moderatePositive = []string{
	"good", "nice", "clean", "safe", "convenient", "happy", "worth",
	"solid", "recommend", "impressed", "comfortable", "spacious",
	"decent", "satisfied",
}

// Negation words that invert a nearby matched term
var negations = map[string]bool{
	"not": true, "no": true, "never": true,
	"don't": true, "didn't": true, "won't": true, "barely": true,
}

var lexicon []entry

func init() {
	add := func(phrases []string, weight float64) {
		for _, p := range phrases {
			lexicon = append(lexicon, entry{phrase: p, weight: weight})
		}
	}
	add(collegePositive, weightCollege)
	add(collegeNegative, -weightCollege)
	add(strongPositive, weightStrong)
	add(strongNegative, -weightStrong)
	add(moderatePositive, weightModerate)
	add(moderateNegative, -weightModerate)
}
