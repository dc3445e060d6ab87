package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jtlavin/portalinmo/models"
	"github.com/jtlavin/portalinmo/scraper"
)

// Scrape returns a handler for POST /api/v1/scrape.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Scraper.Scrape drives the page loop for the comuna.
//  3. Fill Timing, return 200 with the run result.
//
// A run that degrades mid-flight (browser crash, timeout) still returns
// 200 with the partial result and a session-failure termination reason;
// only invalid input produces an error status.
func Scrape(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		result, err := sc.Scrape(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			})
			return
		}

		c.JSON(http.StatusOK, models.ScrapeResponse{
			Success: true,
			Result:  result,
			Timing: models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			},
		})
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	scrapeErr, ok := err.(*models.ScrapeError)
	if !ok {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(scrapeErr), models.ScrapeResponse{
		Success: false,
		Error:   scrapeErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
