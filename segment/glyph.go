package segment

// Segment names one of the seven strokes of the display.
//
//	 ________
//	|\__a___/|
//	| |    | |
//	|f|    |b|
//	| |____| |
//	|/  g   \|
//	|\______/|
//	| |    | |
//	|e|    |c|
//	| |____| |
//	|/__d___\|
type Segment uint8

const (
	A Segment = iota // Upper horizontal bar
	B                // Upper right vertical bar
	C                // Lower right vertical bar
	D                // Lower horizontal bar
	E                // Lower left vertical bar
	F                // Upper left vertical bar
	G                // Middle horizontal bar

	numSegments = 7
)

func (s Segment) String() string {
	if s >= numSegments {
		return "?"
	}
	return string(rune('a' + s))
}

// Pattern holds the lit state of every segment. Bit 0 is segment a,
// bit 6 is segment g.
type Pattern uint8

// Blank has no segments lit. It is also what every unsupported value maps to.
const Blank Pattern = 0

// Lit reports whether s is lit in p.
func (p Pattern) Lit(s Segment) bool {
	return p&(1<<s) != 0
}

// String returns the pattern as seven 0/1 characters in a..g order.
func (p Pattern) String() string {
	var buf [numSegments]byte
	for s := A; s <= G; s++ {
		buf[s] = '0'
		if p.Lit(s) {
			buf[s] = '1'
		}
	}
	return string(buf[:])
}

// pattern builds a Pattern from lit flags given in a..g order.
func pattern(a, b, c, d, e, f, g uint8) Pattern {
	return Pattern(a | b<<1 | c<<2 | d<<3 | e<<4 | f<<5 | g<<6)
}

// glyphs is indexed by value. The first ten entries form the decimal table.
var glyphs = [16]Pattern{
	//      a  b  c  d  e  f  g
	pattern(1, 1, 1, 1, 1, 1, 0), // 0
	pattern(0, 1, 1, 0, 0, 0, 0), // 1
	pattern(1, 1, 0, 1, 1, 0, 1), // 2
	pattern(1, 1, 1, 1, 0, 0, 1), // 3
	pattern(0, 1, 1, 0, 0, 1, 1), // 4
	pattern(1, 0, 1, 1, 0, 1, 1), // 5
	pattern(1, 0, 1, 1, 1, 1, 1), // 6
	pattern(1, 1, 1, 0, 0, 0, 0), // 7
	pattern(1, 1, 1, 1, 1, 1, 1), // 8
	pattern(1, 1, 1, 1, 0, 1, 1), // 9
	pattern(1, 1, 1, 0, 1, 1, 1), // A
	pattern(0, 0, 1, 1, 1, 1, 1), // b
	pattern(1, 0, 0, 1, 1, 1, 0), // C
	pattern(0, 1, 1, 1, 1, 0, 1), // d
	pattern(1, 0, 0, 1, 1, 1, 1), // E
	pattern(1, 0, 0, 0, 1, 1, 1), // F
}

// MaxDecimal and MaxHex are the largest values with a glyph in the
// decimal and hexadecimal tables.
const (
	MaxDecimal = 9
	MaxHex     = 15
)

// Lookup returns the glyph for a hexadecimal digit 0-15.
// Any other value, negative ones included, returns Blank.
func Lookup(value int) Pattern {
	if value < 0 || value > MaxHex {
		return Blank
	}
	return glyphs[value]
}

// LookupDecimal returns the glyph for a decimal digit 0-9 and Blank for
// anything else. Digits 0-9 are encoded exactly as in Lookup.
func LookupDecimal(value int) Pattern {
	if value < 0 || value > MaxDecimal {
		return Blank
	}
	return glyphs[value]
}
