package pattern

// SummaryKind tells renderers which view a summary heads.
type SummaryKind string

const (
	SummaryKindReport SummaryKind = "report"
	SummaryKindClean  SummaryKind = "clean"
	SummaryKindDetail SummaryKind = "detail"
)

// Summary represents high-level metrics and counts.
type Summary struct {
	Label   string
	Kind    SummaryKind
	Metrics []SummaryItem
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string // e.g., "Error", "Convention", "Score"
	Value string // formatted value
	Kind  string // one of the Kind* constants
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
