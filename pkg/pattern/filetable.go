package pattern

// FileTable lists files with the ordinal a user selects them by and their
// per-category counts.
type FileTable struct {
	Label   string
	Columns []string // category names, in display order
	Rows    []FileRow
}

// FileRow is one file in a FileTable. Counts is parallel to Columns.
type FileRow struct {
	Ordinal int
	File    string
	Total   int
	Counts  []int
}

func (f *FileTable) Type() PatternType { return PatternTypeFileTable }
