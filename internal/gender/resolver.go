package gender

// Source records which signal decided a speaker's gender
type Source string

const (
	SourceBio  Source = "bio"
	SourceName Source = "name"
)

// Resolver combines the pronoun classifier and the name estimator.
// Unambiguous pronouns in the biography always win over the name.
type Resolver struct {
	estimator *Estimator
}

// NewResolver creates a Resolver around a shared Estimator
func NewResolver(estimator *Estimator) *Resolver {
	return &Resolver{estimator: estimator}
}

// Resolve returns the gender for a speaker with the given name and biography
func (r *Resolver) Resolve(name, bio string) Label {
	label, _ := r.ResolveWithSource(name, bio)
	return label
}

// ResolveWithSource is Resolve but also reports which tier made the decision
func (r *Resolver) ResolveWithSource(name, bio string) (Label, Source) {
	if label := ClassifyPronouns(bio); label.Decided() {
		return label, SourceBio
	}
	return r.estimator.Estimate(name), SourceName
}
