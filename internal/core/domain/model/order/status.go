package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Processing ──> OutForDelivery ──> Delivered
//	                 │
//	                 └──> Cancelled
//
// Delivered and Cancelled are terminal. The legacy vendor-facing label
// "completed" is accepted by StatusFromString as a synonym for Delivered and
// is never persisted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order awaiting
	// vendor attention.
	Pending

	// Processing means the vendor is preparing the order; only orders in
	// this status are assignable to a delivery partner.
	Processing

	// OutForDelivery means exactly one delivery partner is bound and en route.
	OutForDelivery

	// Delivered is the canonical terminal success state.
	Delivered

	// Cancelled is the terminal state reached when a vendor cancels.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Processing:     "processing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Processing:     "processing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// StatusFromString parses the wire representation of a status. The legacy
// label "completed" maps to Delivered so older vendor clients keep working.
func StatusFromString(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "completed" {
		return Delivered, nil
	}

	for status, str := range getValidStatusStrings() {
		if str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any out-of-range value.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is defined from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Accept transitions the status to OutForDelivery.
// Only Processing orders are assignable; everything else is a Conflict.
func (s Status) Accept() (Status, error) {
	if s != Processing {
		return 0, errs.NewConflictErrorWithCause(
			"accept order",
			fmt.Errorf("%s is not an assignable status", s.String()),
		)
	}

	return OutForDelivery, nil
}

// Deliver transitions the status to Delivered.
// Only an order that is out for delivery can be delivered.
func (s Status) Deliver() (Status, error) {
	if s != OutForDelivery {
		return 0, errs.NewConflictErrorWithCause(
			"deliver order",
			fmt.Errorf("%s is not a deliverable status", s.String()),
		)
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
// Cancellation is available while the order is still with the vendor
// (pending or processing); once a partner is bound it is a Conflict.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Processing {
		return 0, errs.NewConflictErrorWithCause(
			"cancel order",
			fmt.Errorf("%s is not a cancellable status", s.String()),
		)
	}

	return Cancelled, nil
}

// ValidateCanHavePartner checks the consistency between status and delivery
// partner binding: a partner is bound exactly when the order is out for
// delivery or delivered.
func (s Status) ValidateCanHavePartner(partner bool) error {
	if partner && s != OutForDelivery && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s must not have a delivery partner", s.String()),
		)
	}

	if !partner && (s == OutForDelivery || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s must have a delivery partner", s.String()),
		)
	}

	return nil
}
