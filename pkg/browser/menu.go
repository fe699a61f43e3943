package browser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned for menu input outside the fixed choice
// set and for file ordinals outside the current summary. It is always
// recoverable: the caller reprompts.
var ErrInvalidSelection = errors.New("invalid selection")

// MenuItem is one entry of the summary menu.
type MenuItem struct {
	Key   string
	Label string
	Event Event
}

// Menu is the fixed summary menu.
var Menu = []MenuItem{
	{Key: "1", Label: "Show detail for one file", Event: ChooseDetailOne},
	{Key: "2", Label: "Show summary", Event: ChooseSummary},
	{Key: "3", Label: "Show detail for all files", Event: ChooseDetailAll},
	{Key: "4", Label: "Rerun", Event: ChooseRerun},
	{Key: "5", Label: "Quit", Event: ChooseQuit},
}

// ParseChoice maps menu input to its event.
func ParseChoice(input string) (Event, error) {
	in := strings.TrimSpace(input)
	for _, item := range Menu {
		if item.Key == in {
			return item.Event, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not one of 1-%d", ErrInvalidSelection, in, len(Menu))
}

// ParseOrdinal validates a file number against a summary of n files.
func ParseOrdinal(input string, n int) (int, error) {
	in := strings.TrimSpace(input)
	v, err := strconv.Atoi(in)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, in)
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, v, n)
	}
	return v, nil
}
