package server

import (
	"errors"
	"fmt"
	"net/http"
)

type errorKind int

const (
	errKindValidation errorKind = iota
	errKindNotFound
	errKindConflict
	errKindPrecondition
)

// apiError is the domain error taxonomy: validation (bad input), not-found
// (missing room/player/prompt), conflict (duplicate vote, self-vote, code
// collision) and precondition (phase gate not met). No operation retries
// itself; the caller decides.
type apiError struct {
	kind errorKind
	msg  string
}

func (e *apiError) Error() string { return e.msg }

func validationErr(format string, args ...any) error {
	return &apiError{kind: errKindValidation, msg: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...any) error {
	return &apiError{kind: errKindNotFound, msg: fmt.Sprintf(format, args...)}
}

func conflictErr(format string, args ...any) error {
	return &apiError{kind: errKindConflict, msg: fmt.Sprintf(format, args...)}
}

func preconditionErr(format string, args ...any) error {
	return &apiError{kind: errKindPrecondition, msg: fmt.Sprintf(format, args...)}
}

func isConflict(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr) && apiErr.kind == errKindConflict
}

func isNotFound(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr) && apiErr.kind == errKindNotFound
}

func statusForError(err error) int {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.kind {
	case errKindValidation:
		return http.StatusBadRequest
	case errKindNotFound:
		return http.StatusNotFound
	case errKindConflict:
		return http.StatusConflict
	case errKindPrecondition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
