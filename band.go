package pace

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Band buckets an item for display (heatmap colouring, progress lists).
// It preserves the three-state automaticity contract: never attempted,
// attempted but not yet scoreable, and scored — with scored items split at
// the automaticity threshold.
type Band int

const (
	BandUnseen    Band = iota + 1 // Never attempted.
	BandWeak                      // Attempted, no correct answer yet.
	BandLearning                  // Scored below the automaticity threshold.
	BandAutomatic                 // Scored above the automaticity threshold.
)

var (
	bandNames = [...]string{
		BandUnseen:    "Unseen",
		BandWeak:      "Weak",
		BandLearning:  "Learning",
		BandAutomatic: "Automatic",
	}
	bandByName = map[string]Band{
		"Unseen":    BandUnseen,
		"Weak":      BandWeak,
		"Learning":  BandLearning,
		"Automatic": BandAutomatic,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Band(0)
	_ json.Marshaler           = Band(0)
	_ json.Unmarshaler         = (*Band)(nil)
	_ encoding.TextMarshaler   = Band(0)
	_ encoding.TextUnmarshaler = (*Band)(nil)
)

// BandFor buckets a display automaticity score. attempted is false only for
// items with no record at all; a zero score with attempted=true means the
// item has been seen but never scored.
func BandFor(automaticity float64, attempted bool, threshold float64) Band {
	switch {
	case !attempted:
		return BandUnseen
	case automaticity == 0:
		return BandWeak
	case automaticity > threshold:
		return BandAutomatic
	default:
		return BandLearning
	}
}

func (b Band) isValid() bool {
	return b >= BandUnseen && b <= BandAutomatic
}

// String returns the name of the band ("Unseen", "Weak", "Learning",
// "Automatic"). For invalid values it returns "Band(n)".
func (b Band) String() string {
	if b.isValid() {
		return bandNames[b]
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b Band) MarshalText() ([]byte, error) {
	if !b.isValid() {
		return nil, fmt.Errorf("pace: invalid band: %d", int(b))
	}
	return []byte(bandNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Band) UnmarshalText(text []byte) error {
	v, ok := bandByName[string(text)]
	if !ok {
		return fmt.Errorf("pace: invalid band: %q", text)
	}
	*b = v
	return nil
}

// MarshalJSON implements json.Marshaler. Band serializes as a JSON string.
func (b Band) MarshalJSON() ([]byte, error) {
	text, err := b.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (b *Band) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pace: invalid band: %s", data)
	}
	return b.UnmarshalText([]byte(s))
}
