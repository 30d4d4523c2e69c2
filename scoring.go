package newsrank

// ScoringGroup is a named, weighted cluster of related keywords. A group
// contributes its weight at most once per item.
type ScoringGroup struct {
	Name     string
	Weight   int
	Keywords []string
}

// BypassScore and BypassHit are assigned to every item when keyword scoring
// is bypassed.
const (
	BypassScore = 100
	BypassHit   = "BYPASS"
)
