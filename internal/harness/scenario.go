package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/calendar/internal/calendar"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// IDs are handed out, in order, to created events.
	// If empty, evt-1, evt-2, ... are used.
	IDs []string `yaml:"ids,omitempty"`

	// Setup seeds the store. Every setup event must commit.
	Setup []SetupEvent `yaml:"setup,omitempty"`

	// Flow contains the steps under test.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final trace and state.
	Assertions []Assertion `yaml:"assertions"`
}

// SetupEvent is an event created before the flow runs.
type SetupEvent struct {
	Date           string `yaml:"date"`
	calendar.Draft `yaml:",inline"`
}

// Operations a flow step can perform.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Outcome names recorded in the trace and matched by expect.
const (
	OutcomeCommitted  = "committed"
	OutcomeInvalid    = "invalid"
	OutcomeConflicted = "conflicted"
	OutcomeNotFound   = "not_found"
)

// FlowStep is one submission or deletion.
type FlowStep struct {
	// Op is create, update or delete.
	Op string `yaml:"op"`

	// ID is the target of update and delete.
	ID string `yaml:"id,omitempty"`

	// Date is the target day of create and update.
	Date string `yaml:"date,omitempty"`

	// Draft holds the entered fields for create and update.
	calendar.Draft `yaml:",inline"`

	// Expect is the outcome the step must reach. If empty, the outcome
	// is recorded but not checked.
	Expect string `yaml:"expect,omitempty"`
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// ID names an event (event_exists, event_absent, trace_contains).
	ID string `yaml:"id,omitempty"`

	// Op and State filter flow steps (trace_contains, trace_count).
	Op    string `yaml:"op,omitempty"`
	State string `yaml:"state,omitempty"`

	// Count is the expected number of events or matching steps.
	Count int `yaml:"count,omitempty"`

	// Expect holds event fields to compare (event_exists). Keys are the
	// JSON field names: date, title, startTime, endTime, description, color.
	Expect map[string]string `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertEventCount    = "event_count"
	AssertEventExists   = "event_exists"
	AssertEventAbsent   = "event_absent"
	AssertNoOverlaps    = "no_overlaps"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict fields catch typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// It does not check the event fields themselves; rejecting bad drafts is
// the engine's job and is what invalid expectations test.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, ev := range s.Setup {
		if _, err := calendar.ParseDate(ev.Date); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		switch step.Op {
		case OpCreate:
		case OpUpdate, OpDelete:
			if step.ID == "" {
				return fmt.Errorf("flow[%d]: id is required for %s", i, step.Op)
			}
		case "":
			return fmt.Errorf("flow[%d]: op is required", i)
		default:
			return fmt.Errorf("flow[%d]: unknown op %q", i, step.Op)
		}

		if step.Expect != "" && !validOutcome(step.Expect) {
			return fmt.Errorf("flow[%d]: unknown expect %q", i, step.Expect)
		}
	}

	if err := checkIDs(s); err != nil {
		return err
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// checkIDs ensures an explicit ids list covers every event the scenario can
// create: one per setup event and one per create step.
func checkIDs(s *Scenario) error {
	if len(s.IDs) == 0 {
		return nil
	}
	need := len(s.Setup)
	for _, step := range s.Flow {
		if step.Op == OpCreate {
			need++
		}
	}
	if len(s.IDs) < need {
		return fmt.Errorf("ids: %d listed but setup and create steps need %d", len(s.IDs), need)
	}
	return nil
}

func validOutcome(s string) bool {
	switch s {
	case OutcomeCommitted, OutcomeInvalid, OutcomeConflicted, OutcomeNotFound:
		return true
	}
	return false
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertEventCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", index)
		}
	case AssertEventExists, AssertEventAbsent:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for %s", index, a.Type)
		}
	case AssertNoOverlaps:
	case AssertTraceContains, AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for %s", index, a.Type)
		}
		if a.State != "" && !validOutcome(a.State) {
			return fmt.Errorf("assertions[%d]: unknown state %q", index, a.State)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
