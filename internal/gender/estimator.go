package gender

import "strings"

// GivenNameExtractor picks the most likely given name out of a full personal
// name, skipping honorifics, middle names and suffixes.
type GivenNameExtractor interface {
	GivenName(fullName string) string
}

// NameClassifier guesses a gender for a given name. Its vocabulary is not a
// hard contract: Estimator normalizes whatever it returns.
type NameClassifier interface {
	Classify(givenName string) string
}

// Estimator infers a speaker's gender from their display name
type Estimator struct {
	classifier NameClassifier
	parser     GivenNameExtractor
}

// NewEstimator creates an Estimator. A nil parser falls back to taking the
// first word of the name.
func NewEstimator(classifier NameClassifier, parser GivenNameExtractor) *Estimator {
	return &Estimator{
		classifier: classifier,
		parser:     parser,
	}
}

// GivenName extracts the given name. Names without a space (stage names,
// handles) are returned unchanged.
func (e *Estimator) GivenName(fullName string) string {
	if !strings.Contains(fullName, " ") {
		return fullName
	}
	if e.parser == nil {
		fields := strings.Fields(fullName)
		if len(fields) == 0 {
			return ""
		}
		return fields[0]
	}
	return e.parser.GivenName(fullName)
}

// Estimate returns Male, Female or Unknown for a full name. The classifier is
// never queried with an empty given name.
func (e *Estimator) Estimate(fullName string) Label {
	given := strings.TrimSpace(e.GivenName(fullName))
	if given == "" || e.classifier == nil {
		return Unknown
	}
	return Normalize(e.classifier.Classify(given))
}

// Normalize collapses a raw classifier answer into a Label.
// "mostly_male" and "mostly-male" become Male (likewise for female); the
// androgynous answer, "unknown" and anything unrecognised become Unknown.
func Normalize(raw string) Label {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.TrimPrefix(s, "mostly_")

	switch Label(s) {
	case Male:
		return Male
	case Female:
		return Female
	default:
		return Unknown
	}
}
