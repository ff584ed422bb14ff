package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/piracy-detector/internal/core/ports"
)

// ScanHandler serves keyword scans of remote pages.
type ScanHandler struct {
	service ports.ScanService
}

func NewScanHandler(service ports.ScanService) *ScanHandler {
	return &ScanHandler{service: service}
}

// Search fetches the page at url and reports the sentences containing keyword.
// Any failure on the fetch path is reported as a 500 carrying the cause.
//
// @Summary      Scan a page for a keyword
// @Tags         scan
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      searchRequest  true  "Page URL and keyword"
// @Success      200   {object}  domain.ScanResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {string}  string  "Unauthorized: Please log in first."
// @Failure      500   {object}  searchErrorResponse
// @Router       /search [post]
func (h *ScanHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidPayload})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.Scan(c.Request().Context(), ports.ScanInput{URL: req.URL, Keyword: req.Keyword})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, searchErrorResponse{
			Message: msgFetchFailed,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}
