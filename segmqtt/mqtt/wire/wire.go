// Package wire parses what the MQTT client receives from the outside:
// broker addresses and command payloads. It has no hardware dependencies.
package wire

import (
	"errors"
	"io"
	"strconv"

	"github.com/harveysanders/sevenseg/segment"
)

// ErrPayloadTooLong is returned by ReadValue for payloads over the limit.
var ErrPayloadTooLong = errors.New("payload too long")

// ReadValue reads a display value from a PUBLISH payload of at most limit bytes.
// The payload is always read to the end, even when it is rejected, because
// the MQTT decoder drops the connection on a partly read payload.
func ReadValue(r io.Reader, limit int) (int, error) {
	payload, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		Discard(r)
		return 0, err
	}
	if len(payload) > limit {
		if err := Discard(r); err != nil {
			return 0, err
		}
		return 0, ErrPayloadTooLong
	}
	return segment.ParseValue(payload)
}

// Discard reads r to the end. Use it for payloads that are ignored.
func Discard(r io.Reader) error {
	_, err := io.Copy(io.Discard, r)
	return err
}

// SplitHostPort splits a host:port string into separate host and port components.
// Returns an error if the format is invalid.
func SplitHostPort(addr string) (host string, port uint16, err error) {
	colonIdx := -1
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			colonIdx = i
			break
		}
	}
	if colonIdx == -1 {
		return "", 0, errors.New("missing port in address")
	}

	host = addr[:colonIdx]
	if host == "" {
		return "", 0, errors.New("empty host")
	}
	port, err = ParsePort(addr[colonIdx+1:])
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}

// ParsePort parses a decimal TCP port in the range 1-65535.
func ParsePort(s string) (uint16, error) {
	if s == "" {
		return 0, errors.New("empty port")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errors.New("port " + strconv.Quote(s) + " is not a number")
		}
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.New("port " + s + " out of range")
	}
	if v == 0 {
		return 0, errors.New("port 0 is not dialable")
	}
	return uint16(v), nil
}
