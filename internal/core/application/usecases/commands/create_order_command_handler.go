package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves every requested product against the catalog and builds line items
// carrying the owning vendor and current price. Resolution and persistence
// share one transaction: an unresolvable item rejects the whole order and
// persists nothing.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// The new order starts in the requested initial status with no delivery partner.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	items, err := h.resolveItems(ctx, uow, cmd.Items())
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		items,
		cmd.ShippingAddress(),
		cmd.ShippingLocation(),
		cmd.InitialStatus(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveItems looks up every requested product and builds the order lines.
// The repository reports the first unresolvable product as ObjectNotFound.
func (h *CreateOrderCommandHandler) resolveItems(
	ctx context.Context, uow CheckoutUoW, inputs []OrderItemInput,
) ([]order.LineItem, error) {
	ids := make([]kernel.UUID, 0, len(inputs))
	for _, input := range inputs {
		ids = append(ids, input.ProductID)
	}

	products, err := uow.ProductRepository().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}

	items := make([]order.LineItem, 0, len(inputs))
	for _, input := range inputs {
		resolved, ok := byID[input.ProductID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("productID", input.ProductID.String())
		}

		item, err := order.NewLineItem(resolved.ID(), resolved.VendorID(), input.Quantity, resolved.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
