package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// Read endpoints for the renderer: profile snapshot, goal lists, journal
// history.

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := app.Store().GetUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load profile")
			return
		}
		HandleSuccess(c, app.Logger(), user, nil)
	}
}

func GetGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := internal.Period(c.DefaultQuery("period", string(internal.PeriodWeek)))
		if !internal.ValidPeriod(period) {
			HandleError(c, app.Logger(), errors.New("period must be day, week or month"), 400, "Invalid period")
			return
		}
		goals, err := app.Store().GetGoals(c.Request.Context(), c.Param("id"), period)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goals")
			return
		}
		HandleSuccess(c, app.Logger(), goals, map[string]any{"period": period})
	}
}

func GetJournal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
		if err != nil || days < 1 {
			HandleError(c, app.Logger(), errors.New("days must be a positive integer"), 400, "Invalid window")
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 {
			HandleError(c, app.Logger(), errors.New("limit must be a positive integer"), 400, "Invalid limit")
			return
		}
		entries, err := app.Store().GetRecentJournal(c.Request.Context(), c.Param("id"), days, limit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch journal")
			return
		}
		HandleSuccess(c, app.Logger(), entries, nil)
	}
}
