package activity

import (
	"github.com/pkg/errors"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindCapacity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindCapacity:
		return "capacity"
	default:
		return "unknown"
	}
}

const (
	DetailEmailRequired   = "Email is required"
	DetailNotFound        = "Activity not found"
	DetailAlreadySignedUp = "Student is already signed up"
	DetailAtCapacity      = "Activity is at maximum capacity"
	DetailNotSignedUp     = "Student is not signed up for this activity"
)

// Error is returned by every failing registry operation. Detail is the
// human readable reason handed back to API callers.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func ValidationError(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

func NotFoundError(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func ConflictError(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func CapacityError(detail string) *Error {
	return &Error{Kind: KindCapacity, Detail: detail}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return 0, false
}

func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsNotFound(err error) bool   { return isKind(err, KindNotFound) }
func IsConflict(err error) bool   { return isKind(err, KindConflict) }
func IsCapacity(err error) bool   { return isKind(err, KindCapacity) }

func isKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
