package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIRoot liệt kê các endpoint chính
func APIRoot(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	base := scheme + "://" + c.Request.Host + "/api/v1/"

	c.JSON(http.StatusOK, gin.H{
		"Hotels": gin.H{
			"list":   base + "hotels",
			"detail": base + "hotels/1",
			"search": base + "search",
		},
		"Rooms": gin.H{
			"list":   base + "hotels/1/rooms",
			"detail": base + "hotels/1/rooms/1",
		},
		"Users": gin.H{
			"list":   base + "users",
			"detail": base + "users/1",
			"block":  base + "users/1/toggle_active",
			"theme":  base + "users/1/toggle_theme",
		},
		"Bookings": gin.H{
			"list":   base + "bookings",
			"detail": base + "bookings/1",
		},
		"Reviews": gin.H{
			"list":   base + "hotels/1/reviews",
			"detail": base + "hotels/1/reviews/1",
		},
		"Cities": gin.H{
			"list": base + "cities",
		},
		"Discounts": gin.H{
			"detail": base + "discounts/roulette",
		},
	})
}
