// Package productrepo provides data transfer objects and mapping functions
// for product persistence.
package productrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting product
// aggregates. Category and the active flag are indexed because discovery
// filters on both.
type ProductDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID         uuid.UUID `gorm:"type:uuid;index"`
	Name             string
	Category         string `gorm:"index"`
	Price            float64
	Latitude         float64
	Longitude        float64
	AddressLine      string
	DeliveryRadiusKm float64
	Active           bool `gorm:"index"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:               aggregate.ID().Bytes(),
		VendorID:         aggregate.VendorID().Bytes(),
		Name:             aggregate.Name(),
		Category:         aggregate.Category(),
		Price:            aggregate.Price(),
		Latitude:         aggregate.Location().Latitude(),
		Longitude:        aggregate.Location().Longitude(),
		AddressLine:      aggregate.AddressLine(),
		DeliveryRadiusKm: aggregate.DeliveryRadiusKm(),
		Active:           aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a product domain aggregate using RestoreProduct.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		vendorID,
		dto.Name,
		dto.Category,
		dto.Price,
		location,
		dto.AddressLine,
		dto.DeliveryRadiusKm,
		dto.Active,
	)
}
