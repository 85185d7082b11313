package handler

import (
	"github.com/thewspl/financialfreedommobile/internal/middleware"
	"github.com/thewspl/financialfreedommobile/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	transactions *service.TransactionService
}

func NewStatsHandler(transactions *service.TransactionService) *StatsHandler {
	return &StatsHandler{transactions: transactions}
}

// Weekly returns the trailing-7-day income/expense series for the home chart.
func (h *StatsHandler) Weekly(c *gin.Context) {
	uid := middleware.GetUID(c)
	stats, err := h.transactions.WeeklyStats(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, stats)
}
