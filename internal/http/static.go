package http

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed stylesheet.css
var stylesheet []byte

// RegisterStatic wires the stylesheet shared by the HTML pages.
func RegisterStatic(r *gin.Engine) {
	r.GET("/stylesheet.css", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/css; charset=utf-8", stylesheet)
	})
}
