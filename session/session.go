// Package session holds the planner's transient in-memory state and the
// transitions between uploads, scenario generation, and view selection.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"mawsool-planner/errors"
	"mawsool-planner/models"
	"mawsool-planner/parser"
	"mawsool-planner/scheduler"
	"mawsool-planner/staffing"
	"mawsool-planner/workbook"
)

// State is one immutable snapshot of a planning session. Transitions return
// a new State and never modify the receiver; the forecast itself follows its
// own lifecycle (replaced wholesale on upload, augmented in place by
// scenario generation).
type State struct {
	Forecast    *models.Forecast
	View        models.ViewMode
	HasScenario bool
	Budget      float64
}

// Initial returns the state of a fresh session: no forecast, baseline view.
func Initial() State {
	return State{View: models.ViewBaseline}
}

// WithForecast is the upload transition: the new forecast replaces whatever
// existed, any previous scenario is forgotten, and the view resets to
// baseline.
func (s State) WithForecast(fc *models.Forecast) State {
	return State{Forecast: fc, View: models.ViewBaseline}
}

// WithScenario is the scenario transition: the budget is recorded and the
// active view switches to the scheduled plan.
func (s State) WithScenario(budget float64) State {
	next := s
	next.View = models.ViewScheduled
	next.HasScenario = true
	next.Budget = budget
	return next
}

// WithView is the view-selection transition.
func (s State) WithView(view models.ViewMode) State {
	next := s
	next.View = view
	return next
}

// Manager serializes the discrete user actions of one session. Workbook
// parsing runs off the calling goroutine; only one parse is ever in flight,
// and a parse that completes always installs its forecast over whatever
// state existed when it started. There is no cancellation.
type Manager struct {
	mu      sync.Mutex
	state   State
	parsing bool

	factors staffing.Factors
	names   workbook.SheetNames
	log     zerolog.Logger
}

// NewManager returns a Manager with a fresh session.
func NewManager(factors staffing.Factors, names workbook.SheetNames, log zerolog.Logger) *Manager {
	return &Manager{
		state:   Initial(),
		factors: factors,
		names:   names,
		log:     log,
	}
}

// Upload starts parsing an uploaded workbook. It returns ErrParseBusy while
// a previous upload is still parsing. The returned channel receives the
// single parse outcome and is then closed; a nil outcome means the new
// forecast has been installed.
func (m *Manager) Upload(r io.Reader) (<-chan error, error) {
	m.mu.Lock()
	if m.parsing {
		m.mu.Unlock()
		return nil, errors.ErrParseBusy
	}
	m.parsing = true
	m.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		start := time.Now()

		calls, aht, err := workbook.ReadMatrices(r, m.names)
		if err != nil {
			m.mu.Lock()
			m.parsing = false
			m.mu.Unlock()
			m.log.Warn().Err(err).Msg("upload rejected")
			done <- err
			return
		}
		fc := parser.Ingest(calls, aht, m.factors)

		m.mu.Lock()
		m.state = m.state.WithForecast(fc)
		m.parsing = false
		m.mu.Unlock()

		m.log.Info().
			Int("intervals", fc.Len()).
			Dur("elapsed", time.Since(start)).
			Msg("forecast ingested")
		done <- nil
	}()
	return done, nil
}

// GenerateScenario rescales the current forecast under the given budget and
// switches the active view to the scheduled plan. With no forecast loaded it
// returns ErrNoForecast; with an empty forecast it is a no-op.
func (m *Manager) GenerateScenario(budget float64) (scheduler.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Forecast == nil {
		return scheduler.Summary{}, errors.ErrNoForecast
	}
	sum, err := scheduler.GenerateScenario(m.state.Forecast, budget, m.factors)
	if err != nil {
		return scheduler.Summary{}, err
	}
	if sum.PeakRequired == 0 {
		return sum, nil
	}
	m.state = m.state.WithScenario(budget)

	m.log.Info().
		Int("peak_required", sum.PeakRequired).
		Float64("multiplier", sum.Multiplier).
		Int("scheduled_total", sum.ScheduledTotal).
		Int("understaffed", sum.Understaffed).
		Msg("scenario generated")
	return sum, nil
}

// SelectView switches the metric later projections read and returns the
// resulting state.
func (m *Manager) SelectView(view models.ViewMode) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.WithView(view)
	return m.state
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
