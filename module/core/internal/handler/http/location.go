package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/service"
)

type locationService interface {
	Ingest(ctx context.Context, in service.IngestInput) (*domain.PositionRecord, error)
	GetLatest(ctx context.Context, vehicleID string) (*domain.PositionRecord, error)
	GetHistory(ctx context.Context, vehicleID string, limit int) ([]domain.PositionRecord, error)
}

type arrivalService interface {
	CheckAndAlert(ctx context.Context, rec *domain.PositionRecord) error
}

type pushLocationRequest struct {
	VehicleID string   `json:"vehicle_id" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	SpeedKph  *float64 `json:"speed_kph"`
	Heading   *float64 `json:"heading"`
}

type LocationHandler struct {
	locationSvc locationService
	arrivalSvc  arrivalService
}

func NewLocationHandler(locationSvc locationService, arrivalSvc arrivalService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc, arrivalSvc: arrivalSvc}
}

func (h *LocationHandler) Register(r *gin.RouterGroup) {
	r.POST("/locations", Authenticated(), RequireRole(domain.RoleOperator), h.PushLocation)
	r.GET("/locations/:vehicle_id/latest", Authenticated(), h.GetLatest)
	r.GET("/locations/:vehicle_id/history", Authenticated(), h.GetHistory)
}

func (h *LocationHandler) PushLocation(c *gin.Context) {
	var req pushLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle_id, longitude, latitude required"})
		return
	}

	id, _ := identityFrom(c)

	rec, err := h.locationSvc.Ingest(c.Request.Context(), service.IngestInput{
		VehicleID:  req.VehicleID,
		OperatorID: id.SubjectID,
		Coords:     domain.Coordinates{Lng: *req.Longitude, Lat: *req.Latitude},
		SpeedKph:   req.SpeedKph,
		Heading:    req.Heading,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		case errors.Is(err, domain.ErrVehicleNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown vehicle"})
		default:
			log.Printf("push location: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record location"})
		}
		return
	}

	// The record is already durable; an arrival-check failure only costs
	// the event, so it is logged rather than failing the push.
	if err := h.arrivalSvc.CheckAndAlert(c.Request.Context(), rec); err != nil {
		log.Printf("arrival check for %s: %v", rec.VehicleID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"location": rec})
}

func (h *LocationHandler) GetLatest(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	rec, err := h.locationSvc.GetLatest(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrNoPosition) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no location yet"})
			return
		}
		log.Printf("get latest for %s: %v", vehicleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": rec})
}

func (h *LocationHandler) GetHistory(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}

	records, err := h.locationSvc.GetHistory(c.Request.Context(), vehicleID, limit)
	if err != nil {
		log.Printf("get history for %s: %v", vehicleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	if records == nil {
		records = []domain.PositionRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"items": records})
}
