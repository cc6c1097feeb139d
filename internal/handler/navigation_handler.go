package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/service"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

// NavigationHandler serves the portal shell.
type NavigationHandler struct{}

// NewNavigationHandler constructs NavigationHandler.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Get godoc
// @Summary Sidebar routes and the title of the current page
// @Tags Navigation
// @Produce json
// @Param path query string false "Current page path"
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *NavigationHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, service.NavigationFor(c.Query("path")), nil)
}
