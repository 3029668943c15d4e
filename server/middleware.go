package server

import (
	"log"
	"net/http"
	"time"

	"erc20indexer/indexer"

	"github.com/gin-gonic/gin"
)

// Logger logs each request together with the session phase it left behind,
// so a failed query shows up next to the request that ran it.
func Logger(session *indexer.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		st := session.State()
		line := "[http] %s %s %d %v phase=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), st.Phase}
		if st.Err != nil {
			line += " err=%q"
			args = append(args, st.Err.Error())
		}
		log.Printf(line, args...)
	}
}

// Recovery answers a panicking handler with the same error body the API uses.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[http] panic in %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
