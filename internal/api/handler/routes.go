package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterResultRoutes mounts the results resource on r. The format suffix
// and sort key are spelled out as separate routes because a path parameter
// cannot share a segment with ".json"/".xml". OPTIONS needs no token.
func RegisterResultRoutes(r gin.IRouter, h *ResultHandler, authMiddleware gin.HandlerFunc) {
	collections := []string{ResultsPath, ResultsPath + ".json", ResultsPath + ".xml"}
	item := ResultsPath + "/:ref"

	for _, path := range collections {
		r.OPTIONS(path, h.OptionsCollection)
	}
	r.OPTIONS(item, h.OptionsItem)

	for _, path := range collections {
		r.GET(path, authMiddleware, h.ListResults)
		r.POST(path, authMiddleware, h.CreateResult)
	}
	r.GET(ResultsPath+".json/:sort", authMiddleware, h.ListResults)
	r.GET(ResultsPath+".xml/:sort", authMiddleware, h.ListResults)

	r.GET(item, authMiddleware, h.GetResult)
	r.PUT(item, authMiddleware, h.UpdateResult)
	r.DELETE(item, authMiddleware, h.DeleteResult)
}

// RegisterAuthRoutes mounts the token endpoints on r.
func RegisterAuthRoutes(r gin.IRouter, h *AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/authorize", h.Authorize)
		auth.POST("/token", h.Token)
	}
}
