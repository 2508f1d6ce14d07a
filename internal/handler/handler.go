package handler

import (
	"context"

	"stocklens/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// FinancialDataProvider is the service surface the HTTP layer depends on.
type FinancialDataProvider interface {
	GetAllFinancialData(ctx context.Context, ticker string) (*domain.FinancialData, error)
}

type Handler struct {
	tracer     trace.Tracer
	financials FinancialDataProvider
}

func New(tracer trace.Tracer, financials FinancialDataProvider) *Handler {
	return &Handler{
		tracer:     tracer,
		financials: financials,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/financials/:ticker", h.GetFinancials)
	r.GET("/api/financials/:ticker/prices", h.GetPrices)
}
