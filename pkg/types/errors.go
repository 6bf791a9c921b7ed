package types

import "errors"

// Shape and repository errors. Every repository operation either succeeds
// or returns an error wrapping exactly one of these.
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrDuplicateName   = errors.New("shape name already exists")
	ErrUnknownShape    = errors.New("undefined shape")
	ErrNotAGroup       = errors.New("shape is not a group")
	ErrGroupedShape    = errors.New("shape belongs to a group")
	ErrEmptyGroup      = errors.New("group must contain at least one shape")
)

// Error kind names, as reported by ErrorKind.
const (
	KindOK              = "ok"
	KindInvalidGeometry = "InvalidGeometry"
	KindDuplicateName   = "DuplicateName"
	KindUnknownShape    = "UnknownShape"
	KindNotAGroup       = "NotAGroup"
	KindGroupedShape    = "GroupedShape"
	KindEmptyGroup      = "EmptyGroup"
	KindOther           = "Other"
)

// ErrorKind names the error kind err wraps. A nil error yields KindOK and an
// error outside this package yields KindOther. ErrEmptyGroup is checked
// before ErrInvalidGeometry because NewGroup reports both.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrEmptyGroup):
		return KindEmptyGroup
	case errors.Is(err, ErrInvalidGeometry):
		return KindInvalidGeometry
	case errors.Is(err, ErrDuplicateName):
		return KindDuplicateName
	case errors.Is(err, ErrUnknownShape):
		return KindUnknownShape
	case errors.Is(err, ErrNotAGroup):
		return KindNotAGroup
	case errors.Is(err, ErrGroupedShape):
		return KindGroupedShape
	default:
		return KindOther
	}
}
