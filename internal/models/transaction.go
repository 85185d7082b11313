package models

import (
	"time"

	"github.com/thewspl/financialfreedommobile/internal/store"
)

// Transaction is a single income or expense event attributed to exactly one
// wallet. Its type, amount, and walletId fully determine its contribution to
// that wallet's balance and per-type total.
type Transaction struct {
	ID          string    `json:"id"`
	UID         string    `json:"uid"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date"`
	WalletID    string    `json:"walletId"`
	Image       string    `json:"image,omitempty"`
}

// TransactionFromDoc maps a stored transaction document onto the model.
func TransactionFromDoc(d *store.Document) *Transaction {
	return &Transaction{
		ID:          d.ID,
		UID:         store.String(d.Data["uid"]),
		Type:        store.String(d.Data["type"]),
		Amount:      store.Float(d.Data["amount"]),
		Description: store.String(d.Data["description"]),
		Category:    store.String(d.Data["category"]),
		Date:        store.Time(d.Data["date"]),
		WalletID:    store.String(d.Data["walletId"]),
		Image:       store.String(d.Data["image"]),
	}
}
