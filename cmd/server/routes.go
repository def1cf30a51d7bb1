package main

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"vidgate/internal/metrics"
	"vidgate/internal/middleware"
)

func setupRouter(api *API) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(api.log))
	router.Use(middleware.RequestLogger(api.log))
	router.Use(metrics.Middleware())
	router.Use(middleware.MintCSRFToken())

	// Public API
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/health-check", api.healthCheck)
	router.POST("/api/signup", api.signup)
	router.POST("/api/login", api.login)

	// Session-protected API
	protected := router.Group("/api", middleware.RequireSession(api.users))
	{
		protected.POST("/logout", api.logout)
		protected.GET("/check-auth", api.checkAuth)
		protected.GET("/videos", api.listVideos)
		protected.GET("/stream/*key", api.streamVideo)
	}

	// Static files: everything under /protected requires a session, the
	// rest of the site is public.
	files := router.Group("/protected", middleware.RequireSession(api.users))
	files.GET("/*filepath", api.serveProtectedFile)

	router.GET("/", api.serveIndex)
	router.NoRoute(api.servePublicFile)

	return router
}

func (api *API) serveIndex(c *gin.Context) {
	c.File(filepath.Join(api.cfg.Server.StaticDir, "public", "index.html"))
}

func (api *API) serveProtectedFile(c *gin.Context) {
	dir := filepath.Join(api.cfg.Server.StaticDir, "protected")
	c.FileFromFS(c.Param("filepath"), http.Dir(dir))
}

func (api *API) servePublicFile(c *gin.Context) {
	if middleware.IsAPIPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
		return
	}

	dir := filepath.Join(api.cfg.Server.StaticDir, "public")
	c.FileFromFS(c.Request.URL.Path, http.Dir(dir))
}
