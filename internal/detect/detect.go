// Package detect sniffs stdin to determine which tool produced it.
package detect

import (
	"bytes"

	"github.com/dkoosis/pylens/pkg/mypy"
	"github.com/dkoosis/pylens/pkg/pylint"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	LineStyle         // pylint text report
	RangeStyle        // mypy output with --show-error-end
)

func (f Format) String() string {
	switch f {
	case LineStyle:
		return "line-style"
	case RangeStyle:
		return "range-style"
	default:
		return "unknown"
	}
}

// Tool returns the name of the tool that writes f, or "" for Unknown.
func (f Format) Tool() string {
	switch f {
	case LineStyle:
		return pylint.ToolName
	case RangeStyle:
		return mypy.ToolName
	default:
		return ""
	}
}

// Sniff examines input to determine its format. Range-style headers are
// checked first: their five colon fields would also pass a loose
// line-style check, never the other way round.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}
	if mypy.IsMypyOutput(data) {
		return RangeStyle
	}
	if pylint.IsPylintOutput(data) {
		return LineStyle
	}
	return Unknown
}
