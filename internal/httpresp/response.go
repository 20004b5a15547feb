package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/models"
)

type SlotsResponse struct {
	Slots []string `json:"slots"`
}

type ServiceOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ServicesResponse struct {
	Services []ServiceOption `json:"services"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Slots always serializes an array, never null.
func Slots(c *gin.Context, slots []string) {
	if slots == nil {
		slots = []string{}
	}
	OK(c, SlotsResponse{Slots: slots})
}

func Services(c *gin.Context, services []models.Service) {
	out := make([]ServiceOption, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceOption{ID: s.ID, Name: s.Name})
	}
	OK(c, ServicesResponse{Services: out})
}
