package pattern

// Notice is a one-line status message such as a tool failure or a
// rejected menu selection.
type Notice struct {
	Kind string // one of the Kind* constants
	Text string
}

func (n *Notice) Type() PatternType { return PatternTypeNotice }
