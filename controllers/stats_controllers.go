package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adisyon-app/adisyon/services"
	"github.com/adisyon-app/adisyon/utils"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GetPaymentStats -> payment aggregates; ?days=N widens the window, the
// default is today only
func (st *StatsController) GetPaymentStats(c *gin.Context) {
	dayRange := 1
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("days must be a positive integer"))
			return
		}
		dayRange = parsed
	}

	stats, err := st.Stats.GetPaymentStats(dayRange)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment statistics", stats)
}
