package handler

import (
	"net/http"

	"github.com/thewspl/financialfreedommobile/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps service error kinds onto HTTP statuses. The body keeps
// the uniform {success, msg} shape the mobile client displays verbatim.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.InsufficientFunds, apperr.InvalidOperation:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Upload:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": false, "msg": apperr.Message(err, "something went wrong")})
}

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "msg": msg})
}
