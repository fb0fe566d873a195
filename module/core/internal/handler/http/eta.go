package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

type etaService interface {
	Resolve(ctx context.Context, vehicleID string, stopSeq int) (int, error)
}

type EtaHandler struct {
	etaSvc etaService
}

func NewEtaHandler(etaSvc etaService) *EtaHandler {
	return &EtaHandler{etaSvc: etaSvc}
}

func (h *EtaHandler) Register(r *gin.RouterGroup) {
	r.GET("/eta/:vehicle_id/:stop_seq", Authenticated(), h.GetEta)
}

// GetEta maps each terminal state of the resolution to its own status so a
// rider client can tell "no such stop" from "try again later".
func (h *EtaHandler) GetEta(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	stopSeq, err := strconv.Atoi(c.Param("stop_seq"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stop sequence"})
		return
	}

	seconds, err := h.etaSvc.Resolve(c.Request.Context(), vehicleID, stopSeq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleNotFound),
			errors.Is(err, domain.ErrRouteNotAssigned),
			errors.Is(err, domain.ErrRouteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "bus or route not found"})
		case errors.Is(err, domain.ErrStopNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "stop not found in route"})
		case errors.Is(err, domain.ErrNoPosition):
			c.JSON(http.StatusNotFound, gin.H{"error": "no location for bus"})
		case errors.Is(err, domain.ErrProvidersUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "eta service unavailable"})
		default:
			log.Printf("eta for %s stop %d: %v", vehicleID, stopSeq, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute eta"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"etaSeconds": seconds})
}
