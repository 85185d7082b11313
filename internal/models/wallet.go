package models

import (
	"time"

	"github.com/thewspl/financialfreedommobile/internal/store"
)

// Wallet is a named money container with a cached running balance and
// cumulative income/expense totals. Amount must always equal
// totalIncome - totalExpenses over the live transactions referencing it;
// the services keep all three in lockstep on every mutation.
type Wallet struct {
	ID            string    `json:"id"`
	UID           string    `json:"uid"`
	Name          string    `json:"name"`
	Image         string    `json:"image,omitempty"`
	Amount        float64   `json:"amount"`
	TotalIncome   float64   `json:"totalIncome"`
	TotalExpenses float64   `json:"totalExpenses"`
	Created       time.Time `json:"created"`
}

// WalletFromDoc maps a stored wallet document onto the model.
func WalletFromDoc(d *store.Document) *Wallet {
	return &Wallet{
		ID:            d.ID,
		UID:           store.String(d.Data["uid"]),
		Name:          store.String(d.Data["name"]),
		Image:         store.String(d.Data["image"]),
		Amount:        store.Float(d.Data["amount"]),
		TotalIncome:   store.Float(d.Data["totalIncome"]),
		TotalExpenses: store.Float(d.Data["totalExpenses"]),
		Created:       store.Time(d.Data["created"]),
	}
}
