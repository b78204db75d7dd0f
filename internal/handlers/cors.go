package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// corsMiddleware adapts go-chi/cors to gin. Preflight requests are answered
// here and never reach a route.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return func(c *gin.Context) {
		passed := false
		cc.Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
