package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/faregate/internal/models"
)

type Searcher interface {
	Search(ctx context.Context, intent models.SearchIntent) ([]models.Flight, error)
}

type SearchHandler struct {
	searcher Searcher
}

func NewSearchHandler(s Searcher) *SearchHandler {
	return &SearchHandler{searcher: s}
}

func (h *SearchHandler) Search(c echo.Context) error {
	var intent models.SearchIntent
	if err := c.Bind(&intent); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "invalid request body: " + bindMessage(err),
			Code:  models.CodeInvalidRequest,
		})
	}

	status, body := runSearch(c.Request().Context(), h.searcher, intent)
	return c.JSON(status, body)
}

// runSearch is shared by the HTTP and Lambda entrypoints so both answer with
// the same envelope.
func runSearch(ctx context.Context, s Searcher, intent models.SearchIntent) (int, any) {
	flights, err := s.Search(ctx, intent)
	if err != nil {
		return models.HTTPStatus(err), models.NewErrorResponse(err)
	}
	if flights == nil {
		flights = []models.Flight{}
	}
	return http.StatusOK, models.SearchResponse{Success: true, Data: flights}
}

func bindMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
