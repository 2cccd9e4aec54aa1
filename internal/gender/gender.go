package gender

// Label is the gender assigned to a speaker
type Label string

const (
	Male    Label = "male"
	Female  Label = "female"
	Unknown Label = "unknown"

	// None is returned by ClassifyPronouns when the text gives no verdict
	None Label = ""
)

// Labels returns the reportable labels in display order
func Labels() []Label {
	return []Label{Male, Female, Unknown}
}

// ParseLabel converts a string to a Label. Anything outside the closed set
// of reportable labels becomes Unknown.
func ParseLabel(s string) Label {
	switch Label(s) {
	case Male, Female:
		return Label(s)
	default:
		return Unknown
	}
}

// Decided reports whether the label is male or female
func (l Label) Decided() bool {
	return l == Male || l == Female
}

func (l Label) String() string {
	if l == None {
		return "none"
	}
	return string(l)
}
