package rpcs

import (
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
)

type StatusState int

const (
	StatusPending StatusState = iota
	StatusProcessed
	StatusConfirmed
	StatusFinalized
	StatusFailed
)

func (s StatusState) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusProcessed:
		return "processed"
	case StatusConfirmed:
		return "confirmed"
	case StatusFinalized:
		return "finalized"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("StatusState(%d)", int(s))
	}
}

type Status struct {
	State  StatusState
	Slot   uint64
	Reason string
}

// Reaches reports whether the status is at or past the given commitment.
func (s Status) Reaches(commitment rpc.CommitmentType) bool {
	switch s.State {
	case StatusProcessed, StatusConfirmed, StatusFinalized:
		return s.State >= stateFor(commitment)
	default:
		return false
	}
}

func stateFor(commitment rpc.CommitmentType) StatusState {
	switch commitment {
	case rpc.CommitmentProcessed:
		return StatusProcessed
	case rpc.CommitmentFinalized:
		return StatusFinalized
	default:
		return StatusConfirmed
	}
}

func statusFromResult(r *rpc.SignatureStatusesResult) Status {
	if r == nil {
		return Status{State: StatusPending}
	}
	if r.Err != nil {
		return Status{State: StatusFailed, Slot: r.Slot, Reason: fmt.Sprintf("%v", r.Err)}
	}
	st := Status{Slot: r.Slot}
	switch r.ConfirmationStatus {
	case rpc.ConfirmationStatusFinalized:
		st.State = StatusFinalized
	case rpc.ConfirmationStatusConfirmed:
		st.State = StatusConfirmed
	case rpc.ConfirmationStatusProcessed:
		st.State = StatusProcessed
	default:
		st.State = StatusPending
	}
	return st
}
