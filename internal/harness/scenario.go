package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios exercise the store's write protocol and listing semantics by
// executing a sequence of operations and asserting on the final state.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden file
	// name (without extension).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps contains the operations to execute, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store state.
	// Supported types: list_ids, state_seq, log_count, gameover.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single store operation.
// Op selects the operation; the remaining fields are interpreted per op.
type Step struct {
	// Op is one of: create, set_state, set_metadata, wipe, advance_clock.
	Op string `yaml:"op"`

	// Match is the match id. Required for every op except create (where an
	// empty id draws from the fixed generator) and advance_clock.
	Match string `yaml:"match,omitempty"`

	// Game sets the metadata gameName (create and set_metadata).
	Game string `yaml:"game,omitempty"`

	// Seq is the state sequence number (create's initial state, set_state).
	Seq int64 `yaml:"seq,omitempty"`

	// State is the opaque state payload, serialized to JSON before writing.
	State map[string]any `yaml:"state,omitempty"`

	// Metadata is the opaque metadata payload (the host-defined remainder
	// beyond game and gameover).
	Metadata map[string]any `yaml:"metadata,omitempty"`

	// Gameover marks the match finished. Any non-null value counts; the
	// store only ever checks presence.
	Gameover any `yaml:"gameover,omitempty"`

	// Log is the deltalog batch appended by set_state.
	Log []map[string]any `yaml:"log,omitempty"`

	// Millis is the clock advance for advance_clock steps.
	Millis int64 `yaml:"millis,omitempty"`
}

// Assertion validates the final store state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "list_ids": ListMatches with the filter fields returns exactly IDs
	// - "state_seq": the stored state's seq for Match equals Seq
	// - "log_count": Match has exactly Count log entries
	// - "gameover": Match's finished status equals Gameover
	Type string `yaml:"type"`

	// Match is the target match id (state_seq, log_count, gameover).
	Match string `yaml:"match,omitempty"`

	// Game, Gameover, UpdatedBefore and UpdatedAfter form the list filter
	// (list_ids). Gameover doubles as the expected status for the gameover
	// assertion type.
	Game          string `yaml:"game,omitempty"`
	Gameover      *bool  `yaml:"gameover,omitempty"`
	UpdatedBefore int64  `yaml:"updated_before,omitempty"`
	UpdatedAfter  int64  `yaml:"updated_after,omitempty"`

	// IDs is the expected result, in order (list_ids). Omitted means the
	// listing must be empty.
	IDs []string `yaml:"ids,omitempty"`

	// Seq is the expected state sequence number (state_seq).
	Seq int64 `yaml:"seq,omitempty"`

	// Count is the expected number of log entries (log_count).
	Count int `yaml:"count,omitempty"`
}

// Step op constants.
const (
	OpCreate       = "create"
	OpSetState     = "set_state"
	OpSetMetadata  = "set_metadata"
	OpWipe         = "wipe"
	OpAdvanceClock = "advance_clock"
)

// Assertion type constants.
const (
	AssertListIDs  = "list_ids"
	AssertStateSeq = "state_seq"
	AssertLogCount = "log_count"
	AssertGameover = "gameover"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
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
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpCreate:
		// Empty match id is allowed; the harness generates one.
	case OpSetState:
		if step.Match == "" {
			return fmt.Errorf("steps[%d]: match is required for set_state", index)
		}
	case OpSetMetadata:
		if step.Match == "" {
			return fmt.Errorf("steps[%d]: match is required for set_metadata", index)
		}
	case OpWipe:
		if step.Match == "" {
			return fmt.Errorf("steps[%d]: match is required for wipe", index)
		}
	case OpAdvanceClock:
		if step.Millis <= 0 {
			return fmt.Errorf("steps[%d]: millis must be positive for advance_clock", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertListIDs:
		// All filter fields are optional; empty IDs means "expect nothing".
	case AssertStateSeq:
		if a.Match == "" {
			return fmt.Errorf("assertions[%d]: match is required for state_seq", index)
		}
	case AssertLogCount:
		if a.Match == "" {
			return fmt.Errorf("assertions[%d]: match is required for log_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for log_count", index)
		}
	case AssertGameover:
		if a.Match == "" {
			return fmt.Errorf("assertions[%d]: match is required for gameover", index)
		}
		if a.Gameover == nil {
			return fmt.Errorf("assertions[%d]: gameover is required for the gameover type", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
