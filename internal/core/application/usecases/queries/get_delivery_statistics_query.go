package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetDeliveryStatisticsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatisticsQuery must be created via NewGetDeliveryStatisticsQuery constructor",
)

// recentDeliveriesLimit caps the recent-deliveries list in the response.
const recentDeliveriesLimit = 5

// GetDeliveryStatisticsQuery summarizes one delivery partner's completed work.
type GetDeliveryStatisticsQuery struct {
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryStatisticsQuery creates a statistics query for a partner.
func NewGetDeliveryStatisticsQuery(partnerID kernel.UUID) (GetDeliveryStatisticsQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetDeliveryStatisticsQuery{}, err
	}

	return GetDeliveryStatisticsQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatisticsQueryIsNotConstructed)
}

// PartnerID returns the partner being summarized.
func (q GetDeliveryStatisticsQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// RecentDelivery is one entry of the recent-deliveries list.
type RecentDelivery struct {
	OrderID         kernel.UUID
	DeliveredAt     time.Time
	DurationMinutes float64
}

// GetDeliveryStatisticsQueryResponse summarizes a partner's assigned orders.
// Pending counts orders accepted but not yet delivered. A partner with no
// assignments gets zeros, not an error.
type GetDeliveryStatisticsQueryResponse struct {
	PartnerID          kernel.UUID
	TotalAssigned      int
	Completed          int
	Pending            int
	AvgDeliveryMinutes int
	Recent             []RecentDelivery
}
