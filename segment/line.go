package segment

// Line is a digital output that a Display drives for one segment.
// Errors are platform defined and are returned by Display unchanged.
type Line interface {
	High() error
	Low() error
}

// OutputPin is an output that cannot fail, such as TinyGo's machine.Pin.
type OutputPin interface {
	High()
	Low()
}

// PinLine adapts an OutputPin to Line. Its methods always return nil.
type PinLine[P OutputPin] struct {
	Pin P
}

// Infallible wraps p so it can be used as a Line.
func Infallible[P OutputPin](p P) PinLine[P] {
	return PinLine[P]{Pin: p}
}

func (l PinLine[P]) High() error {
	l.Pin.High()
	return nil
}

func (l PinLine[P]) Low() error {
	l.Pin.Low()
	return nil
}
