package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AxelBuee/TestLibBackendShadow/internal/auth"
)

// ProtectedHandler exposes three demo routes showing the authorization
// tiers: open, token required, token plus scope required.
type ProtectedHandler struct {
	verifier auth.Verifier
}

func NewProtectedHandler(verifier auth.Verifier) *ProtectedHandler {
	return &ProtectedHandler{verifier: verifier}
}

func (h *ProtectedHandler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api")
	api.GET("/public", h.Public)
	api.GET("/private", auth.RequireScopes(h.verifier), h.Private)
	api.GET("/private-scoped", auth.RequireScopes(h.verifier, "write:author"), h.PrivateScoped)
}

func (h *ProtectedHandler) Public(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"msg":    "Hello from a public endpoint! You don't need to be authenticated to see this.",
	})
}

func (h *ProtectedHandler) Private(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"sub":    claims.Subject,
		"scopes": claims.Scopes,
	})
}

func (h *ProtectedHandler) PrivateScoped(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"sub":    claims.Subject,
		"scopes": claims.Scopes,
	})
}
