package ranking

const (
	DefaultAuthorityWeight      = 10
	DefaultQueryWeight          = 5
	DefaultSelfReferencePenalty = -15
)

// Policy holds the scoring constants of the ranking engine.
type Policy struct {
	// AuthorityWeight is awarded per inbound call.
	AuthorityWeight int
	// QueryWeight is awarded per keyword occurrence.
	QueryWeight int
	// SelfReferencePenalty is added to the score for every self-link, after
	// the authority point of that link has been taken back.
	SelfReferencePenalty int
	// SelfReferencePenaltyAppliesToScoreAndCount also removes self-links from
	// the displayed call count, so a self-link is punished twice.
	SelfReferencePenaltyAppliesToScoreAndCount bool
}

// DefaultPolicy returns the standard scoring rules.
func DefaultPolicy() Policy {
	return Policy{
		AuthorityWeight:      DefaultAuthorityWeight,
		QueryWeight:          DefaultQueryWeight,
		SelfReferencePenalty: DefaultSelfReferencePenalty,
		SelfReferencePenaltyAppliesToScoreAndCount: true,
	}
}
