// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and delivery partner are indexed because the availability listing and
// the conditional assignment both filter on them.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index"`
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress   string
	ShippingLatitude  float64
	ShippingLongitude float64
	Status            string     `gorm:"index"`
	DeliveryPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time
	DeliveryStartedAt *time.Time
	DeliveredAt       *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line. Lines are immutable after
// creation; updates to an order never touch them.
type OrderItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	VendorID  uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	UnitPrice float64
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Line rows get fresh identifiers; they only matter on insert.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.DeliveryPartner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:        uuid.New(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			VendorID:  item.VendorID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		Items:             items,
		ShippingAddress:   aggregate.ShippingAddress(),
		ShippingLatitude:  aggregate.ShippingLocation().Latitude(),
		ShippingLongitude: aggregate.ShippingLocation().Longitude(),
		Status:            aggregate.Status().String(),
		DeliveryPartnerID: partnerID,
		CreatedAt:         aggregate.CreatedAt(),
		DeliveryStartedAt: aggregate.DeliveryStartedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	location, err := kernel.NewGeoPoint(dto.ShippingLatitude, dto.ShippingLongitude)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		vendorID, itemErr := kernel.UUIDFromBytes(itemDTO.VendorID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(productID, vendorID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		items,
		dto.ShippingAddress,
		location,
		status,
		partnerID,
		dto.CreatedAt,
		dto.DeliveryStartedAt,
		dto.DeliveredAt,
	)
}
