package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/thewspl/financialfreedommobile/internal/domain"
	"github.com/thewspl/financialfreedommobile/internal/middleware"
	"github.com/thewspl/financialfreedommobile/internal/service"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// Save creates or updates a transaction. Multipart form: id (optional),
// type, amount, walletId, description, category, date (RFC3339 or
// YYYY-MM-DD), image (optional file).
func (h *TransactionHandler) Save(c *gin.Context) {
	uid := middleware.GetUID(c)
	amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)
	in := service.TransactionInput{
		ID:          c.PostForm("id"),
		Type:        c.PostForm("type"),
		Amount:      amount,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		WalletID:    c.PostForm("walletId"),
	}
	if ds := c.PostForm("date"); ds != "" {
		t, err := time.Parse(time.RFC3339, ds)
		if err != nil {
			t, err = time.Parse("2006-01-02", ds)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "invalid date"})
			return
		}
		in.Date = t
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
	txn, err := h.transactions.CreateOrUpdate(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, txn)
}

// Delete reverts a transaction from its wallet and removes it. The owning
// walletId comes as a query parameter, matching the client call shape.
func (h *TransactionHandler) Delete(c *gin.Context) {
	uid := middleware.GetUID(c)
	walletID := c.Query("walletId")
	if walletID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "walletId is required"})
		return
	}
	if err := h.transactions.Delete(c.Request.Context(), uid, c.Param("id"), walletID); err != nil {
		respondError(c, err)
		return
	}
	respondMsg(c, "transaction deleted")
}

// List returns the user's transactions, newest first. Query params:
// walletId (optional), limit (default 30).
func (h *TransactionHandler) List(c *gin.Context) {
	uid := middleware.GetUID(c)
	limit := 30
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "invalid limit"})
			return
		}
		limit = n
	}
	txns, err := h.transactions.List(c.Request.Context(), uid, c.Query("walletId"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, txns)
}

// Categories returns the selectable expense categories.
func (h *TransactionHandler) Categories(c *gin.Context) {
	respondData(c, domain.ExpenseCategories)
}
