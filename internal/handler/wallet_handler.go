package handler

import (
	"net/http"

	"github.com/thewspl/financialfreedommobile/internal/middleware"
	"github.com/thewspl/financialfreedommobile/internal/service"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	wallets *service.WalletService
}

func NewWalletHandler(wallets *service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// Save creates or updates a wallet. Multipart form: id (optional), name,
// image (optional file).
func (h *WalletHandler) Save(c *gin.Context) {
	uid := middleware.GetUID(c)
	in := service.WalletInput{
		ID:   c.PostForm("id"),
		Name: c.PostForm("name"),
	}
	if in.ID == "" && in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "please fill in all required fields"})
		return
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
	w, err := h.wallets.CreateOrUpdate(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, w)
}

// List returns the current user's wallets, newest first.
func (h *WalletHandler) List(c *gin.Context) {
	uid := middleware.GetUID(c)
	wallets, err := h.wallets.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, wallets)
}

// Get returns one wallet by id.
func (h *WalletHandler) Get(c *gin.Context) {
	uid := middleware.GetUID(c)
	w, err := h.wallets.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, w)
}

// Delete removes a wallet and cascade-deletes its transactions.
func (h *WalletHandler) Delete(c *gin.Context) {
	uid := middleware.GetUID(c)
	if err := h.wallets.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMsg(c, "wallet deleted")
}
