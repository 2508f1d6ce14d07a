package handler

import (
	"net/http"

	"stocklens/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetFinancials returns the full aggregate for a ticker: profile, quote,
// enriched income and cash-flow tables, price history, and growth rates.
// Datasets that could not be fetched are listed under "unavailable".
func (h *Handler) GetFinancials(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-financials")
	defer span.End()

	ticker := domain.NormalizeTicker(c.Param("ticker"))
	span.SetAttributes(attribute.String("ticker", ticker))

	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing ticker"})
		return
	}

	data, err := h.financials.GetAllFinancialData(ctx, ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetPrices returns the price history for a ticker at the requested
// granularity (daily by default, monthly via ?granularity=monthly).
func (h *Handler) GetPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-prices")
	defer span.End()

	ticker := domain.NormalizeTicker(c.Param("ticker"))
	span.SetAttributes(attribute.String("ticker", ticker))

	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing ticker"})
		return
	}

	granularity := domain.Granularity(c.DefaultQuery("granularity", string(domain.GranularityDaily)))
	if granularity != domain.GranularityDaily && granularity != domain.GranularityMonthly {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unsupported granularity: " + string(granularity),
			"supported_granularities": []domain.Granularity{
				domain.GranularityDaily,
				domain.GranularityMonthly,
			},
		})
		return
	}

	data, err := h.financials.GetAllFinancialData(ctx, ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if msg, ok := data.Unavailable[domain.DatasetPrices]; ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	prices := data.Prices
	if granularity == domain.GranularityMonthly {
		prices = data.PricesMonthly
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker":      ticker,
		"granularity": granularity,
		"prices":      prices,
	})
}
