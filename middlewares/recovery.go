package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/apis"
	"github.com/supakorn-kn/peponi-admin/errors"
)

// Recovery answers a panicking handler with the unknown error envelope instead of dropping the connection.
func Recovery() gin.HandlerFunc {

	return func(c *gin.Context) {

		defer func() {

			if r := recover(); r != nil {

				slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, apis.CRUDResponse{Error: errors.UnknownError.New(r)})
			}
		}()

		c.Next()
	}
}
