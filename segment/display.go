// Package segment drives a single seven-segment display whose segments are
// wired to seven independent output lines.
//
// Build a Display from the seven lines and the polarity of the common
// electrode, then call Set with the value to show:
//
//	disp := segment.Pins[segment.PinLine[machine.Pin]]{
//		A: segment.Infallible(machine.GP0),
//		// ...
//		G: segment.Infallible(machine.GP6),
//	}.WithCommonCathode()
//	err := disp.Set(7)
//
// Values 0-15 show 0-9 and A-F. Any other value blanks the display.
// Lines are set one by one in a..g order; there is no simultaneous update.
package segment

// Pins lists the line for every segment. Use WithCommon, WithCommonAnode or
// WithCommonCathode to turn it into a Display.
type Pins[L Line] struct {
	A L // Upper horizontal bar
	B L // Upper right vertical bar
	C L // Lower right vertical bar
	D L // Lower horizontal bar
	E L // Lower left vertical bar
	F L // Upper left vertical bar
	G L // Middle horizontal bar
}

// WithCommon returns a Display driving p with the given polarity.
func (p Pins[L]) WithCommon(common Polarity) *Display[L] {
	return New(p.A, p.B, p.C, p.D, p.E, p.F, p.G, common)
}

// WithCommonAnode is shorthand for WithCommon(Anode).
func (p Pins[L]) WithCommonAnode() *Display[L] {
	return p.WithCommon(Anode)
}

// WithCommonCathode is shorthand for WithCommon(Cathode).
func (p Pins[L]) WithCommonCathode() *Display[L] {
	return p.WithCommon(Cathode)
}

// Display is a seven-segment display with all seven lines of type L.
//
// A Display owns its lines. Nothing else should drive them while the
// Display is in use, and a Display must not be used from several goroutines
// at once.
type Display[L Line] struct {
	lines  [numSegments]L
	common Polarity
}

// Erased is a Display whose lines are held as Line interface values, so each
// segment may be backed by a different concrete type.
type Erased = Display[Line]

// New returns a Display for lines a through g wired with the given polarity.
func New[L Line](a, b, c, d, e, f, g L, common Polarity) *Display[L] {
	return &Display[L]{
		lines:  [numSegments]L{a, b, c, d, e, f, g},
		common: common,
	}
}

// Common returns the polarity the display was built with.
func (d *Display[L]) Common() Polarity {
	return d.common
}

// Set shows value on the display. Values 0-15 show a hexadecimal digit,
// anything else blanks the display.
//
// If a line fails, Set returns that line's error as is and leaves the
// remaining segments untouched.
func (d *Display[L]) Set(value int) error {
	return d.SetPattern(Lookup(value))
}

// SetPattern drives every line so the display shows p.
func (d *Display[L]) SetPattern(p Pattern) error {
	for s := A; s <= G; s++ {
		var err error
		if d.common.Level(p.Lit(s)) {
			err = d.lines[s].High()
		} else {
			err = d.lines[s].Low()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Clear blanks the display.
func (d *Display[L]) Clear() error {
	return d.SetPattern(Blank)
}
