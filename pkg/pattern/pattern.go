// Package pattern defines the semantic data types pylens renders.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of visualization pattern.
type PatternType string

const (
	PatternTypeSummary     PatternType = "summary"
	PatternTypeFileTable   PatternType = "file-table"
	PatternTypeIssueTable  PatternType = "issue-table"
	PatternTypeLeaderboard PatternType = "leaderboard"
	PatternTypeSparkline   PatternType = "sparkline"
	PatternTypeComparison  PatternType = "comparison"
	PatternTypeNotice      PatternType = "notice"
)

// Pattern is the interface all visualization patterns implement.
type Pattern interface {
	Type() PatternType
}

// Severity kinds shared by summary metrics, issue rows and notices.
// They only affect coloring.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)
