// Package segmenttest provides fake lines for testing code built on segment.
package segmenttest

import (
	"errors"
	"strings"

	"github.com/harveysanders/sevenseg/segment"
)

// ErrInjected is returned by a Line that was told to fail.
var ErrInjected = errors.New("segmenttest: injected line failure")

// Level is the recorded state of a fake line.
type Level int8

const (
	Unset Level = iota // never driven
	Low
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "0"
	case High:
		return "1"
	}
	return "-"
}

// Call records one High or Low call made on a Line.
type Call struct {
	Name  string
	Level Level
}

// Journal collects calls across several lines in the order they were made.
type Journal struct {
	Calls []Call
}

// Names returns the line names of every recorded call, in order.
func (j *Journal) Names() []string {
	names := make([]string, len(j.Calls))
	for i, c := range j.Calls {
		names[i] = c.Name
	}
	return names
}

// Line is a fake segment line. It remembers its last level and, when Fail
// is set, returns Err (or ErrInjected) without changing level.
type Line struct {
	Name    string
	Level   Level
	Fail    bool
	Err     error
	Journal *Journal
}

func (l *Line) High() error { return l.set(High) }

func (l *Line) Low() error { return l.set(Low) }

func (l *Line) set(lvl Level) error {
	if l.Journal != nil {
		l.Journal.Calls = append(l.Journal.Calls, Call{Name: l.Name, Level: lvl})
	}
	if l.Fail {
		if l.Err != nil {
			return l.Err
		}
		return ErrInjected
	}
	l.Level = lvl
	return nil
}

// Bank is seven fake lines named "a" through "g" sharing one Journal.
type Bank struct {
	Lines   [7]*Line
	Journal Journal
}

// NewBank returns a Bank with every line Unset.
func NewBank() *Bank {
	b := &Bank{}
	for i := range b.Lines {
		b.Lines[i] = &Line{Name: string(rune('a' + i)), Journal: &b.Journal}
	}
	return b
}

// Pins returns the bank as segment pins, ready for WithCommon.
func (b *Bank) Pins() segment.Pins[*Line] {
	l := b.Lines
	return segment.Pins[*Line]{A: l[0], B: l[1], C: l[2], D: l[3], E: l[4], F: l[5], G: l[6]}
}

// Line returns the line for segment name "a".."g", or nil.
func (b *Bank) Line(name string) *Line {
	for _, l := range b.Lines {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Levels returns the seven levels in a..g order, for example "1111110".
// Unset lines show as "-".
func (b *Bank) Levels() string {
	var sb strings.Builder
	for _, l := range b.Lines {
		sb.WriteString(l.Level.String())
	}
	return sb.String()
}
