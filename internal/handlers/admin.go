package handlers

import (
	"errors"
	"net/http"
	"strings"

	"concallalpha/internal/apperr"
	"concallalpha/internal/db"
	"concallalpha/internal/middleware"
	"concallalpha/internal/models"
	"concallalpha/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminHandler serves the moderation views: comment and report lists
// over a lookback window plus the status mutation.
type AdminHandler struct {
	moderation *store.ModerationStore
}

func NewAdminHandler(gdb *gorm.DB) *AdminHandler {
	return &AdminHandler{moderation: store.NewModerationStore(gdb)}
}

func (h *AdminHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "admin/login.html", nil)
}

func (h *AdminHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	var admin models.AdminUser
	err := db.DB.Where("email = ?", email).First(&admin).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		Render(c, http.StatusUnauthorized, "admin/login.html", gin.H{"Error": "Invalid email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.AdminSessionKey, admin.ID)
	if err := session.Save(); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to start session")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// Moderation lists comments of every status for the selected window.
func (h *AdminHandler) Moderation(c *gin.Context) {
	rng := c.DefaultQuery("range", store.RangeAll)
	comments, err := h.moderation.ListComments(rng)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "unable to load comments")
		return
	}
	Render(c, http.StatusOK, "admin/moderation.html", gin.H{
		"Title":    "Moderation",
		"Comments": comments,
		"Range":    rng,
	})
}

// Reports lists reported comments; reports whose comment has vanished
// are already filtered out by the store.
func (h *AdminHandler) Reports(c *gin.Context) {
	rng := c.DefaultQuery("range", store.RangeAll)
	rows, err := h.moderation.ListReportedComments(rng)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "unable to load reports")
		return
	}
	Render(c, http.StatusOK, "admin/reports.html", gin.H{
		"Title":   "Reported Comments",
		"Reports": rows,
		"Range":   rng,
	})
}

// SetStatus handles POST /admin/comments/:cid/status
func (h *AdminHandler) SetStatus(c *gin.Context) {
	err := h.moderation.SetStatus(c.Param("cid"), c.PostForm("status"))
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/admin")
	case errors.Is(err, apperr.ErrValidation):
		RenderError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		RenderError(c, http.StatusNotFound, "comment not found")
	default:
		RenderError(c, http.StatusInternalServerError, "unable to update comment")
	}
}
