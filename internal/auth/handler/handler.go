package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/provider"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/token"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/logger"
)

// Handler drives the two-leg OAuth login flow: redirect the browser to the
// provider, then turn the provider callback into a signed session credential.
// Each attempt is stateless; nothing is retained between the two legs.
type Handler struct {
	providers   *provider.Registry
	codec       *token.Codec
	callbackURL string
}

func NewHandler(
	registry *provider.Registry,
	codec *token.Codec,
	callbackURL string,
) *Handler {
	return &Handler{
		providers:   registry,
		codec:       codec,
		callbackURL: callbackURL,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/auth/:provider/login", h.login)
	r.GET("/auth/:provider/callback", h.callback)
}

func (h *Handler) login(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL())
}

func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing code or state",
		})
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, state)
	if err != nil {
		// One generic outcome for exchange and profile failures alike.
		logger.Warn("oauth callback failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	user := identity.UserData()

	credential, err := h.codec.Mint(user)
	if err != nil {
		logger.Error("failed to mint session credential", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to issue session",
		})
		return
	}

	logger.Info("login succeeded", map[string]any{
		"provider": providerName,
		"user_id":  user.UserID,
	})

	params := url.Values{}
	params.Set("token", credential)
	params.Set("userId", user.UserID)
	if user.UserName != "" {
		params.Set("userName", user.UserName)
	}

	c.Redirect(http.StatusFound, h.callbackURL+"?"+params.Encode())
}
