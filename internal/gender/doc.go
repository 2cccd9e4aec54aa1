// Package gender classifies speakers as male, female or unknown.
//
// Classification is layered. Personal pronouns in a speaker's biography are
// consulted first; when the biography is silent or uses both sets of pronouns
// the speaker's given name is looked up in a name-gender table instead.
//
// The name table and the given-name parser are exposed as small interfaces
// (NameClassifier, GivenNameExtractor) so callers can substitute their own.
// The defaults, Table and HumanNameParser, are driven by an embedded YAML
// document.
package gender
