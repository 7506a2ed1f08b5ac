// Package repository persists the upload ledger.  Sentinel errors let the
// tools tell an unusable ledger row apart from a database failure.
package repository

import "errors"

// ErrInvalidUpload is returned when a ledger row is missing its event id or
// object key.
var ErrInvalidUpload = errors.New("invalid upload record")
