package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the order lifecycle. It carries the
// customer, the vendor-resolved line items, the shipping destination, the
// lifecycle status, and the delivery-partner binding.
//
// Invariants:
//   - At least one line item; every item carries a resolved vendor
//   - A delivery partner is bound exactly when status is OutForDelivery or
//     Delivered; the binding is set once and never cleared or reassigned
//   - DeliveryStartedAt is set on the transition to OutForDelivery,
//     DeliveredAt on the transition to Delivered, and DeliveredAt never
//     precedes DeliveryStartedAt
//   - Orders are never deleted, only moved to a terminal status
//
// The Accept transition here expresses the business rule; the authoritative
// race-free enforcement is the storage layer's conditional write.
type Order struct {
	id                kernel.UUID
	customerID        kernel.UUID
	items             []LineItem
	shippingAddress   string
	shippingLocation  kernel.GeoPoint
	status            Status
	deliveryPartnerID *kernel.UUID
	createdAt         time.Time
	deliveryStartedAt *time.Time
	deliveredAt       *time.Time

	isConstructed bool
}

// NewOrder creates a new Order with no delivery partner bound. The initial
// status must be Pending or Processing, per caller intent.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	shippingAddress string,
	shippingLocation kernel.GeoPoint,
	initialStatus Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
		createdAt:     createdAt,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		o.setShippingLocation(shippingLocation),
		o.setInitialStatus(initialStatus),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, checking the
// partner/status and timestamp consistency rules.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	shippingAddress string,
	shippingLocation kernel.GeoPoint,
	status Status,
	deliveryPartnerID *kernel.UUID,
	createdAt time.Time,
	deliveryStartedAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHavePartner(deliveryPartnerID != nil); err != nil {
		return nil, err
	}
	if deliveryPartnerID != nil {
		if err := deliveryPartnerID.Validate(); err != nil {
			return nil, err
		}
	}
	if deliveryStartedAt != nil && deliveredAt != nil && deliveredAt.Before(*deliveryStartedAt) {
		return nil, errs.NewValueIsInvalidError("deliveredAt precedes deliveryStartedAt")
	}

	o := &Order{
		isConstructed: true,
		createdAt:     createdAt,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		o.setShippingLocation(shippingLocation),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.deliveryPartnerID = deliveryPartnerID
	o.deliveryStartedAt = deliveryStartedAt
	o.deliveredAt = deliveredAt
	return o, nil
}

// Validate ensures the Order came from a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns the order's line items. The returned slice must not be mutated.
func (o *Order) Items() []LineItem {
	return o.items
}

// ShippingAddress returns the human-readable shipping destination.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// ShippingLocation returns the resolved shipping coordinates.
func (o *Order) ShippingLocation() kernel.GeoPoint {
	return o.shippingLocation
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryPartner returns the bound delivery partner's ID, nil when unbound.
func (o *Order) DeliveryPartner() *kernel.UUID {
	return o.deliveryPartnerID
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveryStartedAt returns when the order went out for delivery, nil before that.
func (o *Order) DeliveryStartedAt() *time.Time {
	return o.deliveryStartedAt
}

// DeliveredAt returns when the order was delivered, nil before that.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// OwnedByVendor reports whether at least one line item belongs to vendorID.
// Vendors may only mutate orders they own a position in.
func (o *Order) OwnedByVendor(vendorID kernel.UUID) bool {
	for _, item := range o.items {
		if item.VendorID().IsEqual(vendorID) {
			return true
		}
	}
	return false
}

// Accept binds the order to a delivery partner. The order must be in
// Processing status with no partner bound; the binding is permanent.
func (o *Order) Accept(partnerID kernel.UUID, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if o.deliveryPartnerID != nil {
		return errs.NewConflictError("accept order")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryPartnerID = &partnerID
	o.deliveryStartedAt = &now
	return nil
}

// Deliver completes the order. Only the bound delivery partner may deliver,
// and only an order that is out for delivery.
func (o *Order) Deliver(partnerID kernel.UUID, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if o.deliveryPartnerID == nil || !o.deliveryPartnerID.IsEqual(partnerID) {
		return errs.NewUnauthorizedError("deliver order")
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	if o.deliveryStartedAt != nil && now.Before(*o.deliveryStartedAt) {
		return errs.NewValueIsInvalidError("delivered time precedes delivery start")
	}

	o.status = newStatus
	o.deliveredAt = &now
	return nil
}

// AdvanceTo applies a vendor-requested status change. Vendors can move an
// order between Pending and Processing, cancel it while no partner is bound,
// and mark a delivery complete once it is out for delivery (the legacy
// "completed" flow). They can never bind a partner.
func (o *Order) AdvanceTo(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("update order status",
			errors.New("order is in a terminal status"))
	}

	switch target {
	case Pending, Processing:
		if o.deliveryPartnerID != nil {
			return errs.NewConflictError("update order status")
		}
		o.status = target
		return nil

	case Cancelled:
		newStatus, err := o.status.Cancel()
		if err != nil {
			return err
		}
		o.status = newStatus
		return nil

	case Delivered:
		newStatus, err := o.status.Deliver()
		if err != nil {
			return err
		}
		o.status = newStatus
		o.deliveredAt = &now
		return nil

	default:
		return errs.NewConflictError("update order status")
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setShippingAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("shipping address")
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setShippingLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.shippingLocation = location
	return nil
}

func (o *Order) setInitialStatus(status Status) error {
	if status != Pending && status != Processing {
		return errs.NewValueIsInvalidError("initial status must be pending or processing")
	}
	o.status = status
	return nil
}
