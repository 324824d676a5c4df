// Package apperr defines the error taxonomy shared by the content store and
// the HTTP layer. Every failure that leaves an operation boundary is wrapped in
// exactly one of the classes below so callers can branch on its kind instead of
// parsing messages.
package apperr

import (
	"errors"
	"net/http"

	"github.com/zeebo/errs"
)

// Kind is the machine-readable tag of an error class.
type Kind string

const (
	KindAuth             Kind = "auth"
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindCorruptRecord    Kind = "corrupt_record"
	KindStorage          Kind = "storage"
	KindMethodNotAllowed Kind = "method_not_allowed"
)

var (
	// Auth is returned when a caller lacks a valid session.
	Auth = errs.Class("not authorized")
	// Validation is returned for missing or malformed input.
	Validation = errs.Class("validation")
	// NotFound is returned when no blob exists at the expected key.
	NotFound = errs.Class("not found")
	// Conflict is returned when a conditional write loses against a concurrent writer.
	Conflict = errs.Class("conflict")
	// CorruptRecord is returned when a blob exists but does not decode as a record.
	CorruptRecord = errs.Class("corrupt record")
	// Storage is returned for any backend failure not otherwise classified.
	Storage = errs.Class("storage")
	// MethodNotAllowed is returned for unsupported HTTP methods.
	MethodNotAllowed = errs.Class("method not allowed")
)

type classification struct {
	class     *errs.Class
	kind      Kind
	status    int
	retryable bool
}

// Order matters: the first class found in the chain wins.
var classifications = []classification{
	{&Auth, KindAuth, http.StatusUnauthorized, false},
	{&Validation, KindValidation, http.StatusBadRequest, false},
	{&NotFound, KindNotFound, http.StatusNotFound, false},
	{&Conflict, KindConflict, http.StatusConflict, true},
	{&CorruptRecord, KindCorruptRecord, http.StatusInternalServerError, false},
	{&MethodNotAllowed, KindMethodNotAllowed, http.StatusMethodNotAllowed, false},
	{&Storage, KindStorage, http.StatusInternalServerError, true},
}

func classify(err error) (classification, bool) {
	if err == nil {
		return classification{}, false
	}
	for _, c := range classifications {
		if c.class.Has(err) {
			return c, true
		}
	}
	return classification{}, false
}

// KindOf returns the kind of err. Unclassified errors are reported as storage
// failures because they can only originate from a backend call.
func KindOf(err error) Kind {
	if c, ok := classify(err); ok {
		return c.kind
	}
	return KindStorage
}

// StatusCode returns the HTTP status code for err.
func StatusCode(err error) int {
	if c, ok := classify(err); ok {
		return c.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether repeating the failed operation may succeed.
func Retryable(err error) bool {
	if c, ok := classify(err); ok {
		return c.retryable
	}
	return true
}

// Message returns the innermost message of err with the class prefixes
// removed, so backend messages reach callers verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for {
		if _, ok := err.(errs.Namer); !ok {
			return err.Error()
		}
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
