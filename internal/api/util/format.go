package util

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/martijn/resultsapi/internal/api/dto"
)

const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// matches "/results.xml", "/results.xml/email" and "/results/5.xml"
var formatSuffix = regexp.MustCompile(`\.(json|xml)(?:/[^/.]*)?$`)

// RequestFormat picks the response format: a ".json"/".xml" path suffix
// wins, then the Accept header, then JSON.
func RequestFormat(c *gin.Context) string {
	if m := formatSuffix.FindStringSubmatch(c.Request.URL.Path); m != nil {
		return m[1]
	}

	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "application/xml") || strings.Contains(accept, "text/xml") {
		return FormatXML
	}
	return FormatJSON
}

// Render writes obj as JSON or XML depending on the request.
func Render(c *gin.Context, code int, obj interface{}) {
	if RequestFormat(c) == FormatXML {
		c.XML(code, obj)
		return
	}
	c.JSON(code, obj)
}

// RenderError writes an ErrorResponse in the request's format.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, dto.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

// AbortWithError renders the error and stops the handler chain.
func AbortWithError(c *gin.Context, code int, message string) {
	RenderError(c, code, message)
	c.Abort()
}
