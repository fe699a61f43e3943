package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidReport marks a report that breaks its structural guarantees.
var ErrInvalidReport = errors.New("invalid report")

// Validate checks the structural guarantees of a report: unique file keys,
// issues sorted by line, counts that sum to the issue total, populated
// messages and a score within [0,10]. All violations are returned together.
func Validate(r *Report) error {
	if r == nil {
		return fmt.Errorf("%w: nil report", ErrInvalidReport)
	}
	var result *multierror.Error

	if r.Score != nil && (*r.Score < 0 || *r.Score > 10) {
		result = multierror.Append(result, fmt.Errorf("score %.2f outside [0,10]", *r.Score))
	}

	seen := make(map[string]bool, len(r.Files))
	for _, f := range r.Files {
		if seen[f.File] {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate file entry", f.File))
		}
		seen[f.File] = true

		sum := 0
		for _, n := range f.Counts {
			sum += n
		}
		if sum != len(f.Issues) {
			result = multierror.Append(result, fmt.Errorf("%s: counts sum to %d, have %d issues", f.File, sum, len(f.Issues)))
		}

		for i, is := range f.Issues {
			if i > 0 && is.Start.Line < f.Issues[i-1].Start.Line {
				result = multierror.Append(result, fmt.Errorf("%s: issue %d out of line order (%d after %d)",
					f.File, i, is.Start.Line, f.Issues[i-1].Start.Line))
			}
			if strings.TrimSpace(is.Message) == "" {
				result = multierror.Append(result, fmt.Errorf("%s:%d: empty message", f.File, is.Start.Line))
			}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	return nil
}
