package commands

import (
	"context"
	"time"
)

// AcceptOrderCommandHandler binds a delivery partner to an order.
// Exclusivity rides on the repository's conditional write: the binding
// succeeds only if the order is still unassigned when the statement runs, so
// two concurrent accepts resolve to exactly one winner regardless of load.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance. A lost race surfaces as errs.ErrConflict,
// a missing order as errs.ErrObjectNotFound.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	startedAt := time.Now().UTC()
	if err := uow.OrderRepository().AssignDeliveryPartner(ctx, cmd.OrderID(), cmd.PartnerID(), startedAt); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
