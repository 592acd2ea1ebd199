package product

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Domain errors for product operations.
var (
	// ErrNameIsRequired is returned when attempting to create a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")
)

// Product represents a vendor listing that customers discover by proximity.
// It is an aggregate root owned by a vendor. The location and delivery radius
// are inherited from the vendor's store profile; products do not carry an
// independently settable location.
//
// Business rules:
//   - Product must have a valid UUID, a valid owning vendor UUID, and a
//     non-empty name
//   - Delivery radius must be positive; it bounds proximity discovery
//   - Only active products appear in discovery results
type Product struct {
	// id uniquely identifies the product
	id kernel.UUID
	// vendorID identifies the owning vendor
	vendorID kernel.UUID
	// name is the customer-facing listing name
	name string
	// category groups products for discovery filtering
	category string
	// price is the unit price resolved into order line items
	price float64
	// location is the vendor store position used for proximity queries
	location kernel.GeoPoint
	// addressLine is the human-readable store address
	addressLine string
	// deliveryRadiusKm bounds how far from location the product is offered
	deliveryRadiusKm float64
	// active marks whether the product is visible in discovery
	active bool

	isConstructed bool
}

// NewProduct creates a new active Product with the specified parameters.
func NewProduct(
	id kernel.UUID,
	vendorID kernel.UUID,
	name string,
	category string,
	price float64,
	location kernel.GeoPoint,
	addressLine string,
	deliveryRadiusKm float64,
) (*Product, error) {
	product := &Product{
		isConstructed: true,
		active:        true,
	}

	if err := errors.Join(
		product.setID(id),
		product.setVendorID(vendorID),
		product.setName(name),
		product.setCategory(category),
		product.setPrice(price),
		product.setLocation(location),
		product.setAddressLine(addressLine),
		product.setDeliveryRadiusKm(deliveryRadiusKm),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// RestoreProduct reconstructs a Product aggregate from persistent storage,
// including its active flag.
func RestoreProduct(
	id kernel.UUID,
	vendorID kernel.UUID,
	name string,
	category string,
	price float64,
	location kernel.GeoPoint,
	addressLine string,
	deliveryRadiusKm float64,
	active bool,
) (*Product, error) {
	product, err := NewProduct(id, vendorID, name, category, price, location, addressLine, deliveryRadiusKm)
	if err != nil {
		return nil, err
	}

	product.active = active
	return product, nil
}

// Validate checks if the Product was properly constructed.
// The zero value of Product is invalid and will fail this validation.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products for equality based on their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

// ID returns the unique identifier of the product.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// VendorID returns the identifier of the vendor that owns the product.
func (p *Product) VendorID() kernel.UUID {
	return p.vendorID
}

// Name returns the customer-facing listing name.
func (p *Product) Name() string {
	return p.name
}

// Category returns the discovery category, empty when uncategorized.
func (p *Product) Category() string {
	return p.category
}

// Price returns the unit price.
func (p *Product) Price() float64 {
	return p.price
}

// Location returns the vendor store position used for proximity queries.
func (p *Product) Location() kernel.GeoPoint {
	return p.location
}

// AddressLine returns the human-readable store address.
func (p *Product) AddressLine() string {
	return p.addressLine
}

// DeliveryRadiusKm returns how far from the store the product is offered.
func (p *Product) DeliveryRadiusKm() float64 {
	return p.deliveryRadiusKm
}

// IsActive reports whether the product is visible in discovery.
func (p *Product) IsActive() bool {
	return p.active
}

// Deactivate removes the product from discovery without deleting it.
func (p *Product) Deactivate() {
	p.active = false
}

// Activate returns the product to discovery.
func (p *Product) Activate() {
	p.active = true
}

// UpdateStoreProfile propagates a vendor store profile change onto the
// product's inherited location, address, and delivery radius.
func (p *Product) UpdateStoreProfile(location kernel.GeoPoint, addressLine string, deliveryRadiusKm float64) error {
	return errors.Join(
		p.setLocation(location),
		p.setAddressLine(addressLine),
		p.setDeliveryRadiusKm(deliveryRadiusKm),
	)
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

func (p *Product) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.vendorID = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	p.name = name
	return nil
}

func (p *Product) setCategory(category string) error {
	p.category = strings.TrimSpace(category)
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("price")
	}

	p.price = price
	return nil
}

func (p *Product) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	p.location = location
	return nil
}

func (p *Product) setAddressLine(addressLine string) error {
	if strings.TrimSpace(addressLine) == "" {
		return errs.NewValueIsRequiredError("address line")
	}

	p.addressLine = addressLine
	return nil
}

func (p *Product) setDeliveryRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidError("delivery radius")
	}

	p.deliveryRadiusKm = radiusKm
	return nil
}
