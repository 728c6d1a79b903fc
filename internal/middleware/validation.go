package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-mock-api/internal/utils"
)

const WeekKey = "week"

// ValidateWeekQuery rejects requests whose week query parameter is missing or
// not an ISO date. The raw value is stored under WeekKey.
func ValidateWeekQuery(loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		week := c.Query("week")
		if week == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Week parameter is required (YYYY-MM-DD format)"})
			return
		}
		if _, err := utils.ParseISO(week, loc); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
		c.Set(WeekKey, week)
		c.Next()
	}
}
