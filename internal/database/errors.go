package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// Kind categorizes storage failures.
type Kind string

const (
	KindTimeout    Kind = "timeout"
	KindQuota      Kind = "quota_exceeded"
	KindCorruption Kind = "corruption"
	KindConstraint Kind = "constraint"
	KindIO         Kind = "io"
	KindClosed     Kind = "closed"
	KindReadOnly   Kind = "read_only"
	KindEncoding   Kind = "encoding"
)

// StorageError is an engine failure. Callers must not mask it as another
// error kind; it is meant to travel up to whoever invoked the operation.
type StorageError struct {
	Op    string // insert, update, delete, query, begin, commit, ...
	Table string
	Kind  Kind
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("storage %s %s (%s): %v", e.Op, e.Table, e.Kind, e.Err)
	}
	return fmt.Sprintf("storage %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a StorageError of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// IsUniqueViolation reports whether err was caused by a UNIQUE index.
func IsUniqueViolation(err error) bool {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// wrapErr turns a driver error into a StorageError. ErrNotFound and existing
// StorageErrors pass through untouched.
func wrapErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Table: table, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return KindTimeout
		case sqlite3.ErrFull:
			return KindQuota
		case sqlite3.ErrCorrupt, sqlite3.ErrNotADB:
			return KindCorruption
		case sqlite3.ErrConstraint:
			return KindConstraint
		case sqlite3.ErrReadonly:
			return KindReadOnly
		}
		return KindIO
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindTimeout
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return KindClosed
	}
	return KindIO
}
