// Package historyline decodes the history field reported by shell sessions.
//
// The field is base64 of UTF-8 text shaped as "<index> <command>", the way
// `history 1` prints the last entry. Leading and trailing whitespace around
// the whole line is insignificant; whitespace inside the command is kept,
// except line breaks, which make the line invalid.
package historyline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalid is wrapped by every decode failure.
var ErrInvalid = errors.New("history invalid")

var (
	ErrBase64       = fmt.Errorf("%w: not base64", ErrInvalid)
	ErrUTF8         = fmt.Errorf("%w: not utf-8", ErrInvalid)
	ErrMissingIndex = fmt.Errorf("%w: missing index", ErrInvalid)
	ErrIndexRange   = fmt.Errorf("%w: index out of range", ErrInvalid)
	ErrMultiline    = fmt.Errorf("%w: command spans lines", ErrInvalid)
)

// Line is a decoded history entry. Command may be empty.
type Line struct {
	Index   uint32
	Command string
}

// Decode base64-decodes raw and splits it into index and command text.
func Decode(raw string) (Line, error) {
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return Line{}, ErrBase64
	}
	if !utf8.Valid(b) {
		return Line{}, ErrUTF8
	}
	return Parse(string(b))
}

// Parse splits already decoded text into index and command text.
func Parse(text string) (Line, error) {
	rest := strings.TrimLeftFunc(text, unicode.IsSpace)

	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 {
		return Line{}, ErrMissingIndex
	}

	index, err := strconv.ParseUint(rest[:n], 10, 32)
	if err != nil {
		return Line{}, ErrIndexRange
	}

	// Line breaks may pad the command but not split it.
	command := strings.TrimSpace(rest[n:])
	if strings.ContainsRune(command, '\n') {
		return Line{}, ErrMultiline
	}

	return Line{
		Index:   uint32(index),
		Command: command,
	}, nil
}
