package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-intranet-go/db"
	"campus-intranet-go/locale"
	"campus-intranet-go/models"
)

// APIHandler holds the dependencies for API handlers.
type APIHandler struct {
	Store      *db.Store
	University string
	Logger     *slog.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(store *db.Store, university string, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{
		Store:      store,
		University: university,
		Logger:     logger,
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

// list writes items, never null.
func list[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *APIHandler) deleteHandler(what string, remove func(id string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !remove(c.Param("id")) {
			notFound(c, what)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Session Handlers ---

// GetSession handles GET /api/session
func (h *APIHandler) GetSession(c *gin.Context) {
	user, ok := h.Store.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login handles POST /api/session
func (h *APIHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Store.Login(req.Identifier))
}

// Logout handles DELETE /api/session
func (h *APIHandler) Logout(c *gin.Context) {
	h.Store.Logout()
	c.Status(http.StatusNoContent)
}

// UpdateSession handles PATCH /api/session
func (h *APIHandler) UpdateSession(c *gin.Context) {
	var req userPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, ok := h.Store.UpdateUser(req.patch())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *APIHandler) isAdmin() bool {
	user, ok := h.Store.CurrentUser()
	return ok && user.Role == models.RoleAdmin
}

// --- Preference Handlers ---

// GetPreferences handles GET /api/preferences. suggestedLanguage is the best
// match for the request's Accept-Language header.
func (h *APIHandler) GetPreferences(c *gin.Context) {
	lang := h.Store.Language()
	c.JSON(http.StatusOK, gin.H{
		"theme":             h.Store.Theme(),
		"language":          lang,
		"suggestedLanguage": locale.Match(c.GetHeader("Accept-Language"), lang),
	})
}

// ToggleTheme handles POST /api/preferences/theme/toggle
func (h *APIHandler) ToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.Store.ToggleTheme(c.Request.Context())})
}

// SetLanguage handles PUT /api/preferences/language
func (h *APIHandler) SetLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Store.SetLanguage(c.Request.Context(), req.Language); err != nil {
		if errors.Is(err, db.ErrUnsupportedLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("set language", "language", req.Language, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set language"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": h.Store.Language()})
}

// --- Notification Handlers ---

// GetNotifications handles GET /api/notifications
func (h *APIHandler) GetNotifications(c *gin.Context) {
	notifications := h.Store.Notifications()
	if notifications == nil {
		notifications = []models.AppNotification{}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   h.Store.UnreadCount(),
	})
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (h *APIHandler) MarkAllNotificationsRead(c *gin.Context) {
	h.Store.MarkAllAsRead()
	c.JSON(http.StatusOK, gin.H{"unreadCount": 0})
}

// --- Dashboard ---

// GetDashboard handles GET /api/dashboard
func (h *APIHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Dashboard())
}

// PingHandler handles GET /api/ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
