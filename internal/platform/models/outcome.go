package models

import "time"

// State is step of account synchronization.
type State string

// Account synchronization states in execution order. StateFailed is terminal and reachable from any other state.
const (
	StateLoadCredentials  State = "LOAD_CREDENTIALS"
	StateFetch            State = "FETCH"
	StateResolveAggregate State = "RESOLVE_AGGREGATE"
	StateFilter           State = "FILTER"
	StateStage            State = "STAGE"
	StateSwap             State = "SWAP"
	StateDone             State = "DONE"
	StateFailed           State = "FAILED"
)

// ErrorKind classifies why account synchronization failed.
type ErrorKind string

// Error kinds of failed synchronizations.
const (
	KindNone              ErrorKind = ""
	KindCredentialMissing ErrorKind = "credential_missing"
	KindCredentialStore   ErrorKind = "credential_store"
	KindNotLinked         ErrorKind = "not_linked"
	KindAuth              ErrorKind = "auth"
	KindFetch             ErrorKind = "fetch"
	KindRepositoryWrite   ErrorKind = "repository_write"
	KindAlreadyRunning    ErrorKind = "already_running"
	KindCanceled          ErrorKind = "canceled"
)

// Outcome is result of single account synchronization.
type Outcome struct {
	AccountID  string    `json:"accountId"`
	SupplierID string    `json:"supplierId,omitempty"`
	State      State     `json:"state"`
	FailedAt   State     `json:"failedAt,omitempty"`
	Kind       ErrorKind `json:"errorKind,omitempty"`
	Error      string    `json:"error,omitempty"`
	// FetchedEntries counts decoded catalog entries, SkippedEntries counts malformed ones.
	FetchedEntries int           `json:"fetchedEntries"`
	SkippedEntries int           `json:"skippedEntries"`
	StoredProducts int           `json:"storedProducts"`
	Duration       time.Duration `json:"duration"`
}

// Succeeded reports whether synchronization reached StateDone.
func (o Outcome) Succeeded() bool {
	return o.State == StateDone
}

// Retryable reports whether failed synchronization may succeed when repeated without changing account.
func (o Outcome) Retryable() bool {
	if o.Succeeded() {
		return false
	}
	switch o.Kind {
	case KindFetch, KindRepositoryWrite, KindAlreadyRunning, KindCanceled, KindCredentialStore:
		return true
	default:
		return false
	}
}

// Report summarizes synchronization batch.
type Report struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Outcomes   []Outcome `json:"outcomes"`
}

// FailuresByKind returns number of failed outcomes per error kind.
func (r *Report) FailuresByKind() map[ErrorKind]int {
	result := make(map[ErrorKind]int)
	for ix := range r.Outcomes {
		if !r.Outcomes[ix].Succeeded() {
			result[r.Outcomes[ix].Kind]++
		}
	}
	return result
}
