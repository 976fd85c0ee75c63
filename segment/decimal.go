package segment

// Decimal keeps the decimal-only behavior of earlier releases on top of a
// Display: 0-9 are shown and every other value, including 10-15, blanks
// the display.
type Decimal[L Line] struct {
	disp *Display[L]
}

// NewDecimal wraps disp. disp remains usable on its own.
func NewDecimal[L Line](disp *Display[L]) *Decimal[L] {
	return &Decimal[L]{disp: disp}
}

// Set shows a decimal digit, or blanks the display when value is outside 0-9.
func (d *Decimal[L]) Set(value int) error {
	return d.disp.SetPattern(LookupDecimal(value))
}

// Display returns the wrapped display.
func (d *Decimal[L]) Display() *Display[L] {
	return d.disp
}
