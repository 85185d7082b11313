package handler

import (
	"net/http"

	"github.com/thewspl/financialfreedommobile/internal/middleware"
	"github.com/thewspl/financialfreedommobile/internal/service"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	users *service.UserService
}

func NewMeHandler(users *service.UserService) *MeHandler {
	return &MeHandler{users: users}
}

// GetProfile returns the current user's profile document.
func (h *MeHandler) GetProfile(c *gin.Context) {
	uid := middleware.GetUID(c)
	u, err := h.users.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, u)
}

// UpdateProfile merge-updates the profile. Multipart form: name, email,
// image (optional file).
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	uid := middleware.GetUID(c)
	in := service.ProfileInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
	}
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "could not read image"})
			return
		}
		defer f.Close()
		in.Image = f
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, u)
}
