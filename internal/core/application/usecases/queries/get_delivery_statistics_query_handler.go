package queries

import (
	"context"
	"math"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryStatisticsQueryHandler computes a partner's delivery summary
// from every order bound to them.
type GetDeliveryStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStatisticsQueryHandler creates a handler for statistics queries.
func NewGetDeliveryStatisticsQueryHandler(db *gorm.DB) GetDeliveryStatisticsQueryHandler {
	return GetDeliveryStatisticsQueryHandler{db: db}
}

// Handle executes the statistics query. Every order bound to the partner
// counts toward totalAssigned; only delivered ones carry both lifecycle
// timestamps and contribute a duration sample.
func (h GetDeliveryStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatisticsQuery,
) (GetDeliveryStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStatisticsQueryResponse{}, err
	}

	response := GetDeliveryStatisticsQueryResponse{
		PartnerID: query.PartnerID(),
		Recent:    make([]RecentDelivery, 0, recentDeliveriesLimit),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			delivery_started_at,
			delivered_at
		FROM orders
		WHERE delivery_partner_id = ?
		ORDER BY delivered_at DESC NULLS LAST
	`, query.PartnerID().Bytes()).Rows()
	if err != nil {
		return GetDeliveryStatisticsQueryResponse{}, errs.NewUpstreamUnavailableErrorWithCause("database", err)
	}
	defer rows.Close()

	durations := make([]float64, 0)

	for rows.Next() {
		var (
			id          uuid.UUID
			status      string
			startedAt   *time.Time
			deliveredAt *time.Time
		)

		if err = rows.Scan(&id, &status, &startedAt, &deliveredAt); err != nil {
			return GetDeliveryStatisticsQueryResponse{}, err
		}

		response.TotalAssigned++

		parsed, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return GetDeliveryStatisticsQueryResponse{}, statusErr
		}

		if parsed != order.Delivered {
			response.Pending++
			continue
		}

		response.Completed++

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetDeliveryStatisticsQueryResponse{}, idErr
		}

		minutes := deliveredAt.Sub(*startedAt).Minutes()
		durations = append(durations, minutes)

		if len(response.Recent) < recentDeliveriesLimit {
			response.Recent = append(response.Recent, RecentDelivery{
				OrderID:         orderID,
				DeliveredAt:     *deliveredAt,
				DurationMinutes: roundMinutes(minutes),
			})
		}
	}

	if err = rows.Err(); err != nil {
		return GetDeliveryStatisticsQueryResponse{}, errs.NewUpstreamUnavailableErrorWithCause("database", err)
	}

	response.AvgDeliveryMinutes = AverageMinutes(durations)
	return response, nil
}

// AverageMinutes averages delivery durations rounded to the nearest whole
// minute. No samples average to zero rather than erroring out.
func AverageMinutes(durations []float64) int {
	if len(durations) == 0 {
		return 0
	}

	var total float64
	for _, d := range durations {
		total += d
	}

	return int(math.Round(total / float64(len(durations))))
}

func roundMinutes(minutes float64) float64 {
	return math.Round(minutes*100) / 100
}
