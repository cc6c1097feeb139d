package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/middleware"
	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

const maxPageSize = 100

// currentStudent returns the student resolved by the session middleware, replying 401 when none is
// attached.
func currentStudent(c *gin.Context) (int, bool) {
	id := middleware.StudentID(c)
	if id <= 0 {
		response.Error(c, appErrors.ErrUnauthorized)
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, key+" must be an integer"))
		return 0, false
	}
	return v, true
}

// respondList writes items, slicing one page when the request carries page or limit.
func respondList[T any](c *gin.Context, items []T) {
	if c.Query("page") == "" && c.Query("limit") == "" {
		response.JSON(c, http.StatusOK, items, nil)
		return
	}
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	size, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > maxPageSize {
		size = 20
	}
	start := len(items)
	if page-1 <= len(items)/size {
		start = min((page-1)*size, len(items))
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	response.JSON(c, http.StatusOK, items[start:end], &models.Pagination{Page: page, PageSize: size, TotalCount: len(items)})
}
