package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal/service"
)

// PostAnalyze answers a natural-language question about the caller's
// activity history.
func PostAnalyze(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateAnalyzeRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		result, err := service.Analyze(c.Request.Context(), app.Activities(), app.Assistant(), user.Username, &req)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to analyze activities")
			return
		}
		HandleSuccess(c, app.Logger(), result, nil)
	}
}

// PostQueryLogs answers a question over the caller's history with optional
// timeframe and category narrowing.
func PostQueryLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.QueryLogsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateQueryLogsRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		result, err := service.QueryLogs(c.Request.Context(), app.Activities(), app.Assistant(), user.Username, &req)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to query logs")
			return
		}
		HandleSuccess(c, app.Logger(), result, nil)
	}
}
