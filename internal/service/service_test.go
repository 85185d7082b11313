package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thewspl/financialfreedommobile/internal/domain"
	"github.com/thewspl/financialfreedommobile/internal/models"
	"github.com/thewspl/financialfreedommobile/internal/store"
)

// stubUploader satisfies cloudinary.Client without hitting the network.
type stubUploader struct {
	url   string
	err   error
	calls int
}

func (u *stubUploader) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func newTestServices(t *testing.T) (*store.Memory, *WalletService, *TransactionService) {
	t.Helper()
	st := store.NewMemory()
	cloud := &stubUploader{url: "https://res.cloudinary.com/test/img.png"}
	wallets := NewWalletService(st, cloud)
	transactions := NewTransactionService(st, wallets, cloud)
	return st, wallets, transactions
}

func seedWallet(t *testing.T, st *store.Memory, id, uid string, amount, totalIncome, totalExpenses float64) {
	t.Helper()
	require.NoError(t, st.Set(context.Background(), domain.CollectionWallets, id, map[string]interface{}{
		"uid":           uid,
		"name":          "wallet " + id,
		"amount":        amount,
		"totalIncome":   totalIncome,
		"totalExpenses": totalExpenses,
		"created":       time.Now(),
	}))
}

func getWallet(t *testing.T, st *store.Memory, id string) *models.Wallet {
	t.Helper()
	doc, err := st.Get(context.Background(), domain.CollectionWallets, id)
	require.NoError(t, err)
	return models.WalletFromDoc(doc)
}

func getTransaction(t *testing.T, st *store.Memory, id string) *models.Transaction {
	t.Helper()
	doc, err := st.Get(context.Background(), domain.CollectionTransactions, id)
	require.NoError(t, err)
	return models.TransactionFromDoc(doc)
}

func countTransactions(t *testing.T, st *store.Memory, walletID string) int {
	t.Helper()
	docs, err := st.Query(context.Background(), domain.CollectionTransactions, store.Query{
		Filters: []store.Filter{{Field: "walletId", Op: "==", Value: walletID}},
	})
	require.NoError(t, err)
	return len(docs)
}
