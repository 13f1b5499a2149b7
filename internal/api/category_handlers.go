package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/service"
)

// GetCategories returns the caller's per-category usage stats and ranked
// suggestions.
func GetCategories(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		counters, err := app.Categories().LoadCounters(c.Request.Context())
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to load categories")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{
			"categories": service.StatsForUser(counters, user.Username),
			"suggested":  service.SuggestedCategories(counters, user.Username, app.Config().SuggestionsLimit),
		}, nil)
	}
}

// GetVisualizations builds the dashboard bundle over the fixed category set.
func GetVisualizations(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		cfg := app.Config()

		activities, err := app.Activities().ListActivities(c.Request.Context(), user.Username, "", "")
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch activities")
			return
		}

		bundle := service.VisualizationSummary(activities, cfg.Categories, cfg.Palette)
		HandleSuccess(c, app.Logger(), bundle, map[string]any{
			"last_updated":     internal.NowString(),
			"total_activities": len(activities),
		})
	}
}
