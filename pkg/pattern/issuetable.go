package pattern

// IssueTable lists the issues of one file.
type IssueTable struct {
	Label   string // file path
	Results []IssueItem
}

// IssueItem is a single issue row.
type IssueItem struct {
	Location string // "12:4" or "12:4-12:9"
	Category string
	Kind     string // one of the Kind* constants
	Message  string
	Excerpt  string // source context, may span lines
}

func (t *IssueTable) Type() PatternType { return PatternTypeIssueTable }
