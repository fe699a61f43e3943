package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dkoosis/pylens/internal/logging"
	"github.com/dkoosis/pylens/pkg/diag"
	"github.com/dkoosis/pylens/pkg/mapper"
	"github.com/dkoosis/pylens/pkg/pattern"
	"github.com/dkoosis/pylens/pkg/pylint"
)

var log = logging.Log

// Acquirer runs the analysis and returns a fresh report. It returns a
// non-nil report even when it also returns an error.
type Acquirer func(ctx context.Context) (*diag.Report, error)

// Sink receives everything the browser displays.
type Sink interface {
	Show(patterns ...pattern.Pattern)
}

// Prompter reads user input. Each method blocks until a line of input is
// available. Returning io.EOF ends the session as if Quit was chosen.
type Prompter interface {
	// Choose reads a menu selection.
	Choose(menu []MenuItem) (string, error)
	// Ordinal reads a file number in [1, n].
	Ordinal(n int) (string, error)
	// Continue waits for the user to acknowledge a detail view.
	Continue() error
}

// Session is one browsing session over the report of a single tool.
type Session struct {
	acquire Acquirer
	known   []diag.Category
	sink    Sink

	report   *diag.Report
	ordinals []string // ordinals[i] is the file numbered i+1
	state    State
	selected string
	scores   []float64
	ranAt    time.Time

	now func() time.Time
}

// NewSession creates a session. known lists the categories of the tool's
// classifier, used for summary columns.
func NewSession(acquire Acquirer, known []diag.Category, sink Sink) *Session {
	return &Session{
		acquire: acquire,
		known:   known,
		sink:    sink,
		report:  &diag.Report{},
		now:     time.Now,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Report returns the current report.
func (s *Session) Report() *diag.Report { return s.report }

// Selected returns the file shown in DetailOne.
func (s *Session) Selected() string { return s.selected }

// Scores returns the scores recorded so far, oldest first.
func (s *Session) Scores() []float64 {
	out := make([]float64, len(s.scores))
	copy(out, s.scores)
	return out
}

// Ordinals returns the files of the current summary in ordinal order.
func (s *Session) Ordinals() []string {
	out := make([]string, len(s.ordinals))
	copy(out, s.ordinals)
	return out
}

// Start acquires the first report and enters Summary.
func (s *Session) Start(ctx context.Context) {
	s.Begin(s.acquire(ctx))
}

// Begin enters Summary with the first report. The session starts in
// Summary even when the first run failed or found nothing; the failure is
// shown once and the empty report browsed.
func (s *Session) Begin(r *diag.Report, err error) {
	s.Load(r, err)
	s.enterSummary()
}

// Load replaces the current report with the outcome of an acquire without
// changing state. A non-nil err is shown once.
func (s *Session) Load(r *diag.Report, err error) {
	if r == nil {
		r = &diag.Report{Tool: s.report.Tool}
	}
	if err != nil {
		s.showError(err)
	}
	s.report = r
	s.ranAt = s.now()
	if r.HasScore() {
		s.scores = append(s.scores, *r.Score)
	}
}

func (s *Session) showError(err error) {
	kind := pattern.KindError
	if errors.Is(err, pylint.ErrNoScore) {
		kind = pattern.KindWarning
	}
	log.Debug("acquire: %v", err)
	s.sink.Show(mapper.Notice(kind, "%v", err))
}

// Reject shows a recoverable input error. The state does not change.
func (s *Session) Reject(err error) {
	s.sink.Show(mapper.Notice(pattern.KindWarning, "%v", err))
}

func (s *Session) fire(ev Event) error {
	to, err := Transition(s.state, ev)
	if err != nil {
		return err
	}
	log.Debug("browser: %s --%s--> %s", s.state, ev, to)
	s.state = to
	return nil
}

// enterSummary rebuilds the ordinal map from the current report and shows
// the summary view.
func (s *Session) enterSummary() {
	s.state = Summary
	s.selected = ""
	s.ordinals = s.ordinals[:0]
	for _, f := range s.report.Files {
		s.ordinals = append(s.ordinals, f.File)
	}
	s.sink.Show(mapper.FromReport(s.report, s.known, s.ranAt)...)
}

// ShowSummary handles menu choice 2.
func (s *Session) ShowSummary() error {
	if err := s.fire(ChooseSummary); err != nil {
		return err
	}
	s.enterSummary()
	return nil
}

// Open handles menu choice 1 once the user has entered a file number.
// An out-of-range or non-numeric input returns ErrInvalidSelection and
// leaves the session in Summary.
func (s *Session) Open(input string) error {
	if s.state != Summary {
		return invalid(s.state, ChooseDetailOne)
	}
	n, err := ParseOrdinal(input, len(s.ordinals))
	if err != nil {
		return err
	}
	f, ok := s.report.File(s.ordinals[n-1])
	if !ok {
		return ErrInvalidSelection
	}
	if err := s.fire(ChooseDetailOne); err != nil {
		return err
	}
	s.selected = f.File
	s.sink.Show(mapper.FileDetail(f))
	return nil
}

// ShowAll handles menu choice 3.
func (s *Session) ShowAll() error {
	if err := s.fire(ChooseDetailAll); err != nil {
		return err
	}
	s.sink.Show(mapper.AllDetail(s.report)...)
	return nil
}

// Ack returns from a detail view to Summary.
func (s *Session) Ack() error {
	if err := s.fire(Ack); err != nil {
		return err
	}
	s.enterSummary()
	return nil
}

// BeginRerun handles menu choice 4 up to the point where a new report is
// needed. Front-ends that acquire asynchronously call FinishRerun with
// the result.
func (s *Session) BeginRerun() error {
	return s.fire(ChooseRerun)
}

// FinishRerun swaps in the new report, shows what changed and moves to
// Clean when the new report has no issues, or to Summary otherwise.
//
// A rerun that failed (anything but pylint's missing score) keeps the
// previous report: the error is shown and the session goes back to
// Summary without a comparison.
func (s *Session) FinishRerun(r *diag.Report, err error) error {
	if s.state != Rerun {
		return invalid(s.state, RerunIssues)
	}
	if err != nil && !errors.Is(err, pylint.ErrNoScore) {
		s.showError(err)
		if err := s.fire(RerunIssues); err != nil {
			return err
		}
		s.enterSummary()
		return nil
	}
	before := s.report
	s.Load(r, err)

	changes := []pattern.Pattern{mapper.RerunDelta(before, s.report, s.known)}
	if trend := mapper.ScoreTrend(s.scores); trend != nil {
		changes = append(changes, trend)
	}
	s.sink.Show(changes...)

	if s.report.IsClean() {
		if err := s.fire(RerunClean); err != nil {
			return err
		}
		s.sink.Show(mapper.Clean(s.report, s.ranAt))
		return nil
	}
	if err := s.fire(RerunIssues); err != nil {
		return err
	}
	s.enterSummary()
	return nil
}

// Rerun runs the tool again and replaces the report.
func (s *Session) Rerun(ctx context.Context) error {
	if err := s.BeginRerun(); err != nil {
		return err
	}
	return s.FinishRerun(s.acquire(ctx))
}

// Quit handles menu choice 5.
func (s *Session) Quit() error {
	return s.fire(ChooseQuit)
}

// invalid returns the transition error for ev in a state that does not
// accept it.
func invalid(from State, ev Event) error {
	_, err := Transition(from, ev)
	return err
}

// Run starts the session and drives it with p until it reaches Clean or
// Quit. Invalid input is shown and reprompted; it never ends the session.
// Run returns nil when the session ends normally, including on io.EOF from
// the prompter.
func (s *Session) Run(ctx context.Context, p Prompter) error {
	s.Start(ctx)
	for !s.state.Terminal() {
		var err error
		switch s.state {
		case Summary:
			err = s.step(ctx, p)
		case DetailOne, DetailAll:
			if err = p.Continue(); err == nil {
				err = s.Ack()
			}
		default:
			return invalid(s.state, Ack)
		}
		if errors.Is(err, io.EOF) {
			s.state = Quit
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// step reads one menu selection and applies it.
func (s *Session) step(ctx context.Context, p Prompter) error {
	in, err := p.Choose(Menu)
	if err != nil {
		return err
	}
	ev, err := ParseChoice(in)
	if err != nil {
		s.Reject(err)
		return nil
	}

	switch ev {
	case ChooseDetailOne:
		if len(s.ordinals) == 0 {
			s.Reject(errNoFiles)
			return nil
		}
		for {
			in, err := p.Ordinal(len(s.ordinals))
			if err != nil {
				return err
			}
			err = s.Open(in)
			if err == nil || !errors.Is(err, ErrInvalidSelection) {
				return err
			}
			s.Reject(err)
		}
	case ChooseSummary:
		return s.ShowSummary()
	case ChooseDetailAll:
		return s.ShowAll()
	case ChooseRerun:
		return s.Rerun(ctx)
	default:
		return s.Quit()
	}
}

var errNoFiles = fmt.Errorf("%w: the report has no files", ErrInvalidSelection)
