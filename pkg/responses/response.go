package responses

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmartinezh/poketeams/pkg/apperr"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message      string            `json:"message"`
	InternalCode string            `json:"internal_code"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// SuccessResponse wraps a payload with a human readable message.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pagination holds the metadata returned alongside every paginated list.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PaginatedResponse is the envelope for paginated list endpoints.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// NewPagination computes the metadata for a page of results. Limit is
// floored at 1 so the division is always defined.
func NewPagination(page, limit int, total int64) Pagination {
	if limit < 1 {
		limit = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ParsePageParams parses pagination query values, flooring page and
// limit at 1 and defaulting unparseable input.
func ParsePageParams(pageRaw, limitRaw string) (page, limit int) {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(limitRaw)
	if err != nil {
		limit = 10
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}

// SendSuccess sends a message+data envelope.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// SendPaginated sends a paginated list with its metadata.
func SendPaginated(c *gin.Context, data interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: NewPagination(page, limit, total),
	})
}

// SendError converts a tagged error into its status and
// {message, internal_code} body. Untagged errors are logged and mapped
// to a generic 500 so internals never leak to the client.
func SendError(c *gin.Context, err error) {
	if e, ok := apperr.From(err); ok {
		c.AbortWithStatusJSON(apperr.HTTPStatus(e.Kind), ErrorResponse{
			Message:      e.Message,
			InternalCode: e.Code,
		})
		return
	}

	log.Printf("unhandled error: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Message:      "Internal server error",
		InternalCode: "INTERNAL_ERROR",
	})
}

// SendValidationError sends a 400 with the field-level messages produced
// by the request binding layer.
func SendValidationError(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Message:      "Validation failed",
		InternalCode: "VALIDATION_ERROR",
		Fields:       fields,
	})
}
