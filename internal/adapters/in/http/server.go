package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	acceptOrderHandler       commands.AcceptOrderCommandHandler
	deliverOrderHandler      commands.DeliverOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	requestResetHandler      commands.RequestPasswordResetCommandHandler
	consumeResetHandler      commands.ConsumePasswordResetCommandHandler

	// Query handlers
	nearbyProductsHandler  queries.GetNearbyProductsQueryHandler
	availableOrdersHandler queries.GetAvailableOrdersQueryHandler
	statisticsHandler      queries.GetDeliveryStatisticsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	requestResetHandler commands.RequestPasswordResetCommandHandler,
	consumeResetHandler commands.ConsumePasswordResetCommandHandler,
	nearbyProductsHandler queries.GetNearbyProductsQueryHandler,
	availableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	statisticsHandler queries.GetDeliveryStatisticsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		acceptOrderHandler:       acceptOrderHandler,
		deliverOrderHandler:      deliverOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		requestResetHandler:      requestResetHandler,
		consumeResetHandler:      consumeResetHandler,
		nearbyProductsHandler:    nearbyProductsHandler,
		availableOrdersHandler:   availableOrdersHandler,
		statisticsHandler:        statisticsHandler,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", s.Health)

	e.GET("/products/nearby", s.GetNearbyProducts)

	e.POST("/:role/forgot-password", s.RequestPasswordReset)
	e.PUT("/:role/reset-password/:token", s.ConsumePasswordReset)

	auth := AuthRequired(jwtSecret)

	customer := e.Group("", auth, RoleRequired(account.RoleCustomer))
	customer.POST("/orders", s.CreateOrder)

	vendor := e.Group("/vendor", auth, RoleRequired(account.RoleVendor))
	vendor.PUT("/orders/:id/status", s.UpdateOrderStatus)

	delivery := e.Group("/delivery", auth, RoleRequired(account.RoleDelivery))
	delivery.GET("/orders/available", s.GetAvailableOrders)
	delivery.PUT("/orders/:id/accept", s.AcceptOrder)
	delivery.PUT("/orders/:id/deliver", s.DeliverOrder)
	delivery.GET("/statistics", s.GetDeliveryStatistics)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors onto HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
		message = "order cannot be accepted at this time"
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		status = http.StatusServiceUnavailable
		message = "a dependent service is unavailable, try again later"
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: message})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress string             `json:"shipping_address"`
	Latitude        float64            `json:"latitude"`
	Longitude       float64            `json:"longitude"`
	Status          string             `json:"status"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	customerID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, errs.NewUnauthorizedError("create order"))
	}

	var request createOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	items := make([]commands.OrderItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		productID, idErr := parseUUID("product_id", item.ProductID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		items = append(items, commands.OrderItemInput{ProductID: productID, Quantity: item.Quantity})
	}

	location, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, items, request.ShippingAddress, location, request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

// AcceptOrder handles PUT /delivery/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	partnerID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, errs.NewUnauthorizedError("accept order"))
	}

	orderID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, partnerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles PUT /delivery/orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	partnerID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, errs.NewUnauthorizedError("deliver order"))
	}

	orderID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, partnerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /vendor/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	vendorID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, errs.NewUnauthorizedError("update order status"))
	}

	orderID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request updateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, vendorID, request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type nearbyProductResponse struct {
	ID          string  `json:"id"`
	VendorID    string  `json:"vendor_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	AddressLine string  `json:"address_line"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DistanceKm  float64 `json:"distance_km"`
}

// GetNearbyProducts handles GET /products/nearby.
func (s *Server) GetNearbyProducts(ctx echo.Context) error {
	origin, err := parseGeoPoint(ctx.QueryParam("latitude"), ctx.QueryParam("longitude"))
	if err != nil {
		return writeError(ctx, err)
	}

	radiusKm, err := parseFloat("radius_km", ctx.QueryParam("radius_km"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetNearbyProductsQuery(origin, radiusKm, ctx.QueryParam("category"))
	if err != nil {
		return writeError(ctx, err)
	}

	products, err := s.nearbyProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]nearbyProductResponse, 0, len(products))
	for _, item := range products {
		response = append(response, nearbyProductResponse{
			ID:          item.ID.String(),
			VendorID:    item.VendorID.String(),
			Name:        item.Name,
			Category:    item.Category,
			Price:       item.Price,
			AddressLine: item.AddressLine,
			Latitude:    item.Location.Latitude(),
			Longitude:   item.Location.Longitude(),
			DistanceKm:  item.DistanceKm,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type availableOrderResponse struct {
	ID              string    `json:"id"`
	ShippingAddress string    `json:"shipping_address"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ItemCount       int       `json:"item_count"`
	CreatedAt       time.Time `json:"created_at"`
	DistanceKm      *float64  `json:"distance_km,omitempty"`
}

// GetAvailableOrders handles GET /delivery/orders/available. Location
// parameters are optional; when present the listing narrows to the partner's
// vicinity and carries distances.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	var (
		query queries.GetAvailableOrdersQuery
		err   error
	)

	latitudeParam := ctx.QueryParam("latitude")
	longitudeParam := ctx.QueryParam("longitude")
	radiusParam := ctx.QueryParam("radius_km")

	if latitudeParam == "" && longitudeParam == "" && radiusParam == "" {
		query = queries.NewGetAvailableOrdersQuery()
	} else {
		origin, parseErr := parseGeoPoint(latitudeParam, longitudeParam)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}

		radiusKm, parseErr := parseFloat("radius_km", radiusParam)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}

		query, err = queries.NewGetAvailableOrdersQueryNear(origin, radiusKm)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	orders, err := s.availableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]availableOrderResponse, 0, len(orders))
	for _, item := range orders {
		entry := availableOrderResponse{
			ID:              item.ID.String(),
			ShippingAddress: item.ShippingAddress,
			Latitude:        item.Location.Latitude(),
			Longitude:       item.Location.Longitude(),
			ItemCount:       item.ItemCount,
			CreatedAt:       item.CreatedAt,
		}
		if item.DistanceKm >= 0 {
			distance := item.DistanceKm
			entry.DistanceKm = &distance
		}
		response = append(response, entry)
	}

	return ctx.JSON(http.StatusOK, response)
}

type recentDeliveryResponse struct {
	OrderID         string    `json:"order_id"`
	DeliveredAt     time.Time `json:"delivered_at"`
	DurationMinutes float64   `json:"duration_minutes"`
}

type deliveryStatisticsResponse struct {
	TotalAssigned      int                      `json:"total_assigned"`
	Completed          int                      `json:"completed"`
	Pending            int                      `json:"pending"`
	AvgDeliveryMinutes int                      `json:"avg_delivery_minutes"`
	Recent             []recentDeliveryResponse `json:"recent"`
}

// GetDeliveryStatistics handles GET /delivery/statistics.
func (s *Server) GetDeliveryStatistics(ctx echo.Context) error {
	partnerID, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, errs.NewUnauthorizedError("delivery statistics"))
	}

	query, err := queries.NewGetDeliveryStatisticsQuery(partnerID)
	if err != nil {
		return writeError(ctx, err)
	}

	statistics, err := s.statisticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	recent := make([]recentDeliveryResponse, 0, len(statistics.Recent))
	for _, delivery := range statistics.Recent {
		recent = append(recent, recentDeliveryResponse{
			OrderID:         delivery.OrderID.String(),
			DeliveredAt:     delivery.DeliveredAt,
			DurationMinutes: delivery.DurationMinutes,
		})
	}

	return ctx.JSON(http.StatusOK, deliveryStatisticsResponse{
		TotalAssigned:      statistics.TotalAssigned,
		Completed:          statistics.Completed,
		Pending:            statistics.Pending,
		AvgDeliveryMinutes: statistics.AvgDeliveryMinutes,
		Recent:             recent,
	})
}

type forgotPasswordRequest struct {
	Email  string `json:"email"`
	Client string `json:"client"`
}

type forgotPasswordResponse struct {
	Message string `json:"message"`
}

// RequestPasswordReset handles POST /:role/forgot-password. The response is
// identical whether or not the address is registered.
func (s *Server) RequestPasswordReset(ctx echo.Context) error {
	var request forgotPasswordRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRequestPasswordResetCommand(request.Email, ctx.Param("role"), request.Client)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.requestResetHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, forgotPasswordResponse{
		Message: "if the address is registered, a reset link has been sent",
	})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ConsumePasswordReset handles PUT /:role/reset-password/:token.
func (s *Server) ConsumePasswordReset(ctx echo.Context) error {
	var request resetPasswordRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewConsumePasswordResetCommand(ctx.Param("token"), ctx.Param("role"), request.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.consumeResetHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func parseGeoPoint(latitudeParam, longitudeParam string) (kernel.GeoPoint, error) {
	latitude, err := parseFloat("latitude", latitudeParam)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	longitude, err := parseFloat("longitude", longitudeParam)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(latitude, longitude)
}

func parseUUID(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseFloat(name, value string) (float64, error) {
	if value == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}
