package segment

import (
	"errors"
	"strings"
)

// Polarity is the wiring of the display's common electrode.
type Polarity uint8

const (
	// Cathode is a common-cathode display: a lit segment is driven high.
	Cathode Polarity = iota
	// Anode is a common-anode display: a lit segment is driven low.
	Anode
)

var errUnknownPolarity = errors.New("segment: unknown polarity, want anode or cathode")

// Level returns the line level that realizes a segment with the given lit state.
func (p Polarity) Level(lit bool) (high bool) {
	return lit != (p == Anode)
}

func (p Polarity) String() string {
	switch p {
	case Anode:
		return "anode"
	case Cathode:
		return "cathode"
	}
	return "unknown"
}

// ParsePolarity accepts "anode", "cathode" and the short forms "ca" and "cc",
// ignoring case and surrounding space.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "anode", "common-anode", "ca":
		return Anode, nil
	case "cathode", "common-cathode", "cc":
		return Cathode, nil
	}
	return Cathode, errUnknownPolarity
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Polarity) UnmarshalText(text []byte) error {
	v, err := ParsePolarity(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Polarity) MarshalText() ([]byte, error) {
	if p != Anode && p != Cathode {
		return nil, errUnknownPolarity
	}
	return []byte(p.String()), nil
}

// Set implements flag.Value so a Polarity can be bound with flag.Var.
func (p *Polarity) Set(s string) error {
	return p.UnmarshalText([]byte(s))
}
