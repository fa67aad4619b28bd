package mods

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/logger"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/middleware"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/purge"
)

// Handler serves the mod routes. Public reads, owner-scoped reads and
// writes, and the machine-write route are registered separately so the
// router can attach a different guard to each group.
type Handler struct {
	store  Store
	purger purge.Notifier
}

func NewHandler(store Store, purger purge.Notifier) *Handler {
	return &Handler{
		store:  store,
		purger: purger,
	}
}

// RegisterPublicRoutes mounts the unauthenticated read routes.
func (h *Handler) RegisterPublicRoutes(r gin.IRouter) {
	r.GET("/mods", h.listMods)
	r.GET("/mods/:id", h.getMod)
}

// RegisterUserRoutes mounts the bearer-guarded owner-scoped routes.
func (h *Handler) RegisterUserRoutes(r gin.IRouter) {
	r.GET("/user-mods", h.listUserMods)
	r.GET("/user-mods/:id", h.getUserMod)
	r.PUT("/user-mods/:id", h.updateUserMod)
}

// RegisterMachineRoutes mounts the api-key-guarded write route.
func (h *Handler) RegisterMachineRoutes(r gin.IRouter) {
	r.POST("/user-mods/", h.createMod)
}

func (h *Handler) listMods(c *gin.Context) {
	summaries, err := h.store.ListPublished(c.Request.Context())
	if err != nil {
		h.storeFailure(c, "list mods", err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) getMod(c *gin.Context) {
	mod, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		h.storeFailure(c, "get mod", err)
		return
	}

	c.JSON(http.StatusOK, mod)
}

func (h *Handler) listUserMods(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summaries, err := h.store.ListForMaintainer(c.Request.Context(), user.UserID)
	if err != nil {
		h.storeFailure(c, "list user mods", err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) getUserMod(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	mod, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		h.storeFailure(c, "get user mod", err)
		return
	}

	// A mod the requester does not maintain is indistinguishable from one
	// that does not exist.
	if !CanView(user.UserID, mod) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, mod)
}

func (h *Handler) updateUserMod(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("id")

	var update Mod
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mod document"})
		return
	}

	update.ID = id
	if err := update.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mod, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		h.storeFailure(c, "get user mod", err)
		return
	}

	if !CanMutate(user.UserID, mod) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.store.Replace(c.Request.Context(), id, &update); err != nil {
		h.storeFailure(c, "update mod", err)
		return
	}

	h.purger.Purge(c.Request.Context(), id)

	c.JSON(http.StatusOK, update)
}

func (h *Handler) createMod(c *gin.Context) {
	var create CreateMod
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mod document"})
		return
	}

	mod := create.NewMod()
	if err := mod.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Insert(c.Request.Context(), mod); err != nil {
		h.storeFailure(c, "create mod", err)
		return
	}

	h.purger.Purge(c.Request.Context(), mod.ID)

	c.JSON(http.StatusOK, mod.Summary())
}

func (h *Handler) storeFailure(c *gin.Context, op string, err error) {
	logger.Error("mod store failure", map[string]any{
		"op":    op,
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
