package params

import (
	"errors"
	"strings"
)

// Kinds of resolution failure. Match with errors.Is.
var (
	ErrUnrecognizedMode    = errors.New("unrecognized mode")
	ErrMissingInput        = errors.New("missing input")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrFileNotFound        = errors.New("file not found")
	ErrFileUnreadable      = errors.New("file unreadable")
	ErrDirectoryUnreadable = errors.New("directory unreadable")
)

// Error reports which flag or field could not be resolved.
type Error struct {
	Field string
	Kind  error
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Is(target error) bool { return e.Kind != nil && target == e.Kind }
func (e *Error) Unwrap() error        { return e.Err }
