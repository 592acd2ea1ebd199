package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when validating a zero-value LineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable value object describing one product position of an
// order. The vendor is resolved from the product at order creation time and
// frozen here, so vendor-ownership checks never need the catalog again.
type LineItem struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	vendorID  kernel.UUID
	quantity  int
	unitPrice float64

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item. Quantity must be positive and
// unit price non-negative.
func NewLineItem(productID kernel.UUID, vendorID kernel.UUID, quantity int, unitPrice float64) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setVendorID(vendorID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate checks that the LineItem came from NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the ordered product's identifier.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// VendorID returns the identifier of the vendor owning the product.
func (i LineItem) VendorID() kernel.UUID {
	return i.vendorID
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit at order creation time.
func (i LineItem) UnitPrice() float64 {
	return i.unitPrice
}

func (i *LineItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *LineItem) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.vendorID = id
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("unit price")
	}
	i.unitPrice = price
	return nil
}
