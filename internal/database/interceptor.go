package database

import "time"

// Op is the kind of write an interceptor is called for.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
)

// Interceptor runs synchronously on every insert and update, after the record
// has been prepared and before it is serialized. It may mutate rec.
type Interceptor func(op Op, table string, rec Record, now time.Time)

type createdStamper interface {
	StampCreated(time.Time)
}

type updatedStamper interface {
	StampUpdated(time.Time)
}

// Timestamps is always installed first. It is the only writer of
// created/updated timestamps, so values supplied by callers are overwritten.
func Timestamps(op Op, _ string, rec Record, now time.Time) {
	switch op {
	case OpInsert:
		if s, ok := rec.(createdStamper); ok {
			s.StampCreated(now)
		}
	case OpUpdate:
		if s, ok := rec.(updatedStamper); ok {
			s.StampUpdated(now)
		}
	}
}
