package pace

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Outcome represents the correctness of one response.
type Outcome int

const (
	Wrong   Outcome = iota + 1 // Incorrect or timed-out answer.
	Correct                    // Correct answer.
)

var (
	outcomeNames  = [...]string{Wrong: "Wrong", Correct: "Correct"}
	outcomeByName = map[string]Outcome{
		"Wrong":   Wrong,
		"Correct": Correct,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Outcome(0)
	_ json.Marshaler           = Outcome(0)
	_ json.Unmarshaler         = (*Outcome)(nil)
	_ encoding.TextMarshaler   = Outcome(0)
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
)

// OutcomeFor converts a correctness flag to an Outcome.
func OutcomeFor(correct bool) Outcome {
	if correct {
		return Correct
	}
	return Wrong
}

// IsValid reports whether o is a valid outcome.
func (o Outcome) IsValid() bool {
	return o == Wrong || o == Correct
}

// String returns the name of the outcome ("Wrong", "Correct").
// For invalid values it returns "Outcome(n)".
func (o Outcome) String() string {
	if o.IsValid() {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(o))
	}
	return []byte(outcomeNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, ok := outcomeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, text)
	}
	*o = v
	return nil
}

// MarshalJSON implements json.Marshaler. Outcome serializes as a JSON string.
func (o Outcome) MarshalJSON() ([]byte, error) {
	text, err := o.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOutcome, data)
	}
	return o.UnmarshalText([]byte(s))
}
