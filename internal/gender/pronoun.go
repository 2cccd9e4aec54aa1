package gender

import "regexp"

// Word boundaries are spelled out because \b only knows ASCII letters, and
// "Nähe" must not count as "he".
var (
	malePronouns   = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(?:he|him)(?:[^\p{L}\p{N}_]|$)`)
	femalePronouns = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(?:she|her)(?:[^\p{L}\p{N}_]|$)`)
)

// ClassifyPronouns looks for personal pronouns in free text.
//
// It returns Male when only "he"/"him" appear, Female when only "she"/"her"
// appear, and None when both sets appear, neither does, or text is empty.
// Counts and positions are ignored.
func ClassifyPronouns(text string) Label {
	if text == "" {
		return None
	}

	male := malePronouns.MatchString(text)
	female := femalePronouns.MatchString(text)

	switch {
	case male && !female:
		return Male
	case female && !male:
		return Female
	default:
		return None
	}
}
