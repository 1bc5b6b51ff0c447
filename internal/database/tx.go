package database

import (
	"database/sql"
	"errors"
)

// Tx is a transaction handed to View and Update callbacks. It must not be
// used after the callback returns.
type Tx struct {
	tx       *sql.Tx
	store    *Store
	writable bool
}

// Writable reports whether the transaction was opened by Update.
func (tx *Tx) Writable() bool {
	return tx.writable
}

func (tx *Tx) requireWritable(op, table string) error {
	if tx.writable {
		return nil
	}
	return &StorageError{Op: op, Table: table, Kind: KindReadOnly, Err: errors.New("write inside read-only transaction")}
}

func (tx *Tx) intercept(op Op, table string, rec Record) {
	now := tx.store.now()
	for _, i := range tx.store.interceptors {
		i(op, table, rec, now)
	}
}
