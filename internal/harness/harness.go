package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/calendar/internal/calendar"
	"github.com/roach88/calendar/internal/engine"
	"github.com/roach88/calendar/internal/store"
)

// Harness is the scenario execution engine.
type Harness struct {
	engine *engine.Engine
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and engine with fixed ids
// 2. Commit setup events
// 3. Execute flow steps, recording outcomes and checking expect clauses
// 4. Evaluate assertions against the trace and final events
//
// A non-nil error means the scenario could not be executed at all; failed
// expectations are reported through Result.
func Run(scenario *Scenario) (*Result, error) {
	if err := checkIDs(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	db, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &Harness{
		engine: engine.New(
			store.NewEvents(db, logger),
			engine.NewFixedGenerator(scenarioIDs(scenario)...),
			engine.WithLogger(logger),
		),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	events, err := h.engine.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final events: %w", err)
	}
	result.Events = events

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// scenarioIDs returns the ids the generator hands out. Without an explicit
// list there is one id per setup event and flow step, which is enough for
// every create to succeed.
func scenarioIDs(s *Scenario) []calendar.ID {
	if len(s.IDs) > 0 {
		ids := make([]calendar.ID, len(s.IDs))
		for i, id := range s.IDs {
			ids[i] = calendar.ID(id)
		}
		return ids
	}

	n := len(s.Setup) + len(s.Flow)
	ids := make([]calendar.ID, n)
	for i := range ids {
		ids[i] = calendar.ID(fmt.Sprintf("evt-%d", i+1))
	}
	return ids
}

// executeSetup commits every setup event. Setup is assumed valid; any
// rejection aborts the run.
func (h *Harness) executeSetup(ctx context.Context, setup []SetupEvent) error {
	for i, ev := range setup {
		date, err := calendar.ParseDate(ev.Date)
		if err != nil {
			return fmt.Errorf("setup step %d: %w", i, err)
		}

		created, err := h.engine.Create(ctx, date, ev.Draft)
		if err != nil {
			return fmt.Errorf("setup step %d: %w", i, err)
		}

		h.logger.Info("setup step completed", "step", i, "event_id", created.ID)
	}
	return nil
}

// executeFlow runs all flow steps and validates expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		ev, err := h.executeStep(ctx, step)
		if err != nil {
			return fmt.Errorf("flow step %d: %w", i, err)
		}
		result.AddTrace(ev)

		if step.Expect != "" && step.Expect != ev.State {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected %s, got %s", i, step.Op, step.Expect, ev.State))
		}

		h.logger.Info("flow step completed",
			"step", i,
			"op", step.Op,
			"event_id", ev.EventID,
			"state", ev.State,
		)
	}

	return nil
}

// executeStep applies one step to the engine. Rejections become trace
// states; only store failures are returned as errors.
func (h *Harness) executeStep(ctx context.Context, step FlowStep) (TraceEvent, error) {
	ev := TraceEvent{
		Op:      step.Op,
		EventID: calendar.ID(step.ID),
		Date:    step.Date,
	}

	if step.Op == OpDelete {
		err := h.engine.Delete(ctx, calendar.ID(step.ID))
		return classify(ev, err)
	}

	// An unparsable date is submitted as the zero date so the engine
	// rejects it like a missing one.
	date, _ := calendar.ParseDate(step.Date)

	out, err := h.engine.Submit(ctx, engine.Submission{
		EventID: calendar.ID(step.ID),
		Date:    date,
		Draft:   step.Draft,
	})
	if out.State == engine.StateCommitted {
		ev.EventID = out.Event.ID
	}
	for _, c := range out.Conflicts {
		ev.Conflicts = append(ev.Conflicts, c.ID)
	}
	return classify(ev, err)
}

func classify(ev TraceEvent, err error) (TraceEvent, error) {
	if err == nil {
		ev.State = OutcomeCommitted
		return ev, nil
	}

	var rerr *engine.Error
	if !errors.As(err, &rerr) {
		return ev, err
	}

	switch rerr.Code {
	case engine.ErrCodeValidation:
		ev.State = OutcomeInvalid
		ev.Field = rerr.Field
	case engine.ErrCodeConflict:
		ev.State = OutcomeConflicted
	case engine.ErrCodeNotFound:
		ev.State = OutcomeNotFound
	default:
		return ev, err
	}
	return ev, nil
}
