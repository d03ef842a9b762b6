package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRunning is an error returned when run can't be started because previous run is not finished yet.
	ErrAlreadyRunning = errors.New("synchronization already running for this supplier")
	// ErrCredentialMissing is returned when account has no access token stored.
	ErrCredentialMissing = errors.New("account has no access token")
	// ErrAccountNotLinked is returned when account is not linked to any supplier.
	ErrAccountNotLinked = errors.New("account is not linked to supplier")
	// ErrSchema is returned when catalog entry has unexpected shape.
	ErrSchema = errors.New("unexpected catalog entry schema")
)

// RepositoryWriteError is returned when supplier products can't be replaced.
// Products of supplier are left untouched when it's returned.
type RepositoryWriteError struct {
	SupplierID string
	Err        error
}

func (e *RepositoryWriteError) Error() string {
	return fmt.Sprintf("can't replace products of supplier %s: %s", e.SupplierID, e.Err)
}

func (e *RepositoryWriteError) Unwrap() error {
	return e.Err
}
