package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired          = errs.NewValueIsRequiredError("items")
	ErrShippingAddressIsRequired = errs.NewValueIsRequiredError("shipping address")
)

// OrderItemInput is one requested line of a new order: which product and how
// many. Vendor and price are resolved from the catalog at handling time, not
// supplied by the caller.
type OrderItemInput struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a customer's request to place a new order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	items            []OrderItemInput
	shippingAddress  string
	shippingLocation kernel.GeoPoint
	initialStatus    order.Status

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, that at least one item with positive quantity was
// requested, and that a shipping address and location were supplied. The
// initial status is the caller's choice of "pending" or "processing"; an
// empty string defaults to pending.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []OrderItemInput,
	shippingAddress string,
	shippingLocation kernel.GeoPoint,
	initialStatus string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setShippingAddress(shippingAddress),
		cmd.setShippingLocation(shippingLocation),
		cmd.setInitialStatus(initialStatus),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	out := make([]OrderItemInput, len(c.items))
	copy(out, c.items)
	return out
}

// ShippingAddress returns the delivery destination address.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// ShippingLocation returns the delivery destination coordinates.
func (c CreateOrderCommand) ShippingLocation() kernel.GeoPoint {
	return c.shippingLocation
}

// InitialStatus returns the status the new order starts in.
func (c CreateOrderCommand) InitialStatus() order.Status {
	return c.initialStatus
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded")
		}
	}

	c.items = make([]OrderItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrShippingAddressIsRequired
	}

	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setShippingLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.shippingLocation = location
	return nil
}

func (c *CreateOrderCommand) setInitialStatus(initialStatus string) error {
	if strings.TrimSpace(initialStatus) == "" {
		c.initialStatus = order.Pending
		return nil
	}

	parsed, err := order.StatusFromString(initialStatus)
	if err != nil {
		return err
	}
	if parsed != order.Pending && parsed != order.Processing {
		return errs.NewValueIsInvalidError("initial status")
	}

	c.initialStatus = parsed
	return nil
}
