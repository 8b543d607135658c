package models

import "errors"

// RentalState defines the transitions allowed from a given rental status.
// The set is closed: Active is the only non-terminal state.
type RentalState interface {
	End(rental *Rental) error
	Cancel(rental *Rental) error
}

// ActiveState is the state of a running rental.
type ActiveState struct{}

func (s *ActiveState) End(rental *Rental) error {
	rental.Status = RentalStatusEnded
	return nil
}

func (s *ActiveState) Cancel(rental *Rental) error {
	rental.Status = RentalStatusCancelled
	return nil
}

// EndedState is terminal.
type EndedState struct{}

func (s *EndedState) End(rental *Rental) error {
	return errors.New("rental already ended")
}

func (s *EndedState) Cancel(rental *Rental) error {
	return errors.New("cannot cancel an ended rental")
}

// CancelledState is terminal.
type CancelledState struct{}

func (s *CancelledState) End(rental *Rental) error {
	return errors.New("cannot end a cancelled rental")
}

func (s *CancelledState) Cancel(rental *Rental) error {
	return errors.New("rental already cancelled")
}

// GetRentalState returns the state matching the rental status.
func GetRentalState(status int) RentalState {
	switch status {
	case RentalStatusEnded:
		return &EndedState{}
	case RentalStatusCancelled:
		return &CancelledState{}
	default:
		return &ActiveState{}
	}
}

// ApplyStatus drives the rental through its state machine towards newStatus.
// Unknown target statuses and transitions out of a terminal state are
// rejected; the rental is left untouched on error.
func ApplyStatus(rental *Rental, newStatus int) error {
	state := GetRentalState(rental.Status)
	switch newStatus {
	case RentalStatusEnded:
		return state.End(rental)
	case RentalStatusCancelled:
		return state.Cancel(rental)
	case RentalStatusActive:
		return errors.New("cannot transition back to active")
	default:
		return errors.New("unrecognized rental status")
	}
}
