package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thewspl/financialfreedommobile/internal/apperr"
	"github.com/thewspl/financialfreedommobile/internal/domain"
	"github.com/thewspl/financialfreedommobile/internal/models"
	"github.com/thewspl/financialfreedommobile/internal/store"
	"github.com/thewspl/financialfreedommobile/pkg/cloudinary"
)

// WalletService owns wallet balance and income/expense totals. It is a
// stateless orchestrator over the document store: totals are read-modify-
// written per call and never cached in process.
type WalletService struct {
	store store.Store
	cloud cloudinary.Client
}

func NewWalletService(st store.Store, cloud cloudinary.Client) *WalletService {
	return &WalletService{store: st, cloud: cloud}
}

// WalletInput carries the caller-editable wallet fields. Image, when set, is
// uploaded and replaced by the returned URL before the document write.
type WalletInput struct {
	ID    string
	Name  string
	Image io.Reader
}

// CreateOrUpdate saves a wallet with merge semantics. New wallets start with
// zero totals and a fresh created timestamp; existing wallets keep any field
// not present in the input.
func (s *WalletService) CreateOrUpdate(ctx context.Context, uid string, in WalletInput) (*models.Wallet, error) {
	fields := map[string]interface{}{"uid": uid}
	if in.Name != "" {
		fields["name"] = in.Name
	}

	id := in.ID
	if id == "" {
		id = s.store.NewID(domain.CollectionWallets)
		fields["amount"] = 0.0
		fields["totalIncome"] = 0.0
		fields["totalExpenses"] = 0.0
		fields["created"] = time.Now()
	} else {
		if _, err := s.ownedWallet(ctx, uid, id); err != nil {
			return nil, err
		}
	}

	if in.Image != nil {
		url, err := s.cloud.UploadImage(ctx, in.Image, domain.FolderWallets, newPublicID())
		if err != nil {
			return nil, apperr.Wrap(apperr.Upload, "could not upload wallet image", err)
		}
		fields["image"] = url
	}

	if err := s.store.Set(ctx, domain.CollectionWallets, id, fields); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "could not save wallet", err)
	}
	doc, err := s.store.Get(ctx, domain.CollectionWallets, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "could not read wallet", err)
	}
	return models.WalletFromDoc(doc), nil
}

// Get returns a single wallet owned by uid.
func (s *WalletService) Get(ctx context.Context, uid, id string) (*models.Wallet, error) {
	return s.ownedWallet(ctx, uid, id)
}

// List returns the user's wallets, newest first.
func (s *WalletService) List(ctx context.Context, uid string) ([]*models.Wallet, error) {
	docs, err := s.store.Query(ctx, domain.CollectionWallets, store.Query{
		Filters: []store.Filter{{Field: "uid", Op: "==", Value: uid}},
		OrderBy: "created",
		Desc:    true,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "could not list wallets", err)
	}
	wallets := make([]*models.Wallet, 0, len(docs))
	for _, d := range docs {
		wallets = append(wallets, models.WalletFromDoc(d))
	}
	return wallets, nil
}

// Delete removes the wallet document and then cascade-deletes its
// transactions. The wallet delete itself is idempotent; a cascade failure is
// surfaced (the wallet is already gone) and not retried.
func (s *WalletService) Delete(ctx context.Context, uid, id string) error {
	doc, err := s.store.Get(ctx, domain.CollectionWallets, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return apperr.Wrap(apperr.Persistence, "could not read wallet", err)
	}
	if doc != nil && store.String(doc.Data["uid"]) != uid {
		return apperr.New(apperr.NotFound, "wallet not found")
	}
	if err := s.store.Delete(ctx, domain.CollectionWallets, id); err != nil {
		return apperr.Wrap(apperr.Persistence, "could not delete wallet", err)
	}
	if _, err := s.DeleteTransactionsByWallet(ctx, id); err != nil {
		return err
	}
	return nil
}

// ApplyNewTransaction adjusts a wallet's balance and per-type total for a
// newly created transaction. The wallet must belong to uid. Both fields go
// out in a single document update.
func (s *WalletService) ApplyNewTransaction(ctx context.Context, uid, walletID string, amount float64, txType string) error {
	w, err := s.ownedWallet(ctx, uid, walletID)
	if err != nil {
		return err
	}

	var fields map[string]interface{}
	if txType == domain.TransactionIncome {
		fields = map[string]interface{}{
			"amount":      w.Amount + amount,
			"totalIncome": w.TotalIncome + amount,
		}
	} else {
		if amount > w.Amount {
			return apperr.New(apperr.InsufficientFunds, "selected wallet does not have enough balance")
		}
		fields = map[string]interface{}{
			"amount":        w.Amount - amount,
			"totalExpenses": w.TotalExpenses + amount,
		}
	}
	if err := s.store.Set(ctx, domain.CollectionWallets, walletID, fields); err != nil {
		return apperr.Wrap(apperr.Persistence, "could not update wallet", err)
	}
	return nil
}

// DeleteTransactionsByWallet removes every transaction referencing walletID,
// one atomic batch per page. Returns the number of transactions deleted.
// A wallet with zero transactions completes in a single query.
func (s *WalletService) DeleteTransactionsByWallet(ctx context.Context, walletID string) (int, error) {
	deleted := 0
	for page := 0; page < domain.CascadeMaxPages; page++ {
		docs, err := s.store.Query(ctx, domain.CollectionTransactions, store.Query{
			Filters: []store.Filter{{Field: "walletId", Op: "==", Value: walletID}},
			Limit:   domain.CascadePageSize,
		})
		if err != nil {
			return deleted, apperr.Wrap(apperr.Persistence,
				fmt.Sprintf("could not list wallet transactions (%d already deleted)", deleted), err)
		}
		if len(docs) == 0 {
			return deleted, nil
		}
		ids := make([]string, 0, len(docs))
		for _, d := range docs {
			ids = append(ids, d.ID)
		}
		if err := s.store.BatchDelete(ctx, domain.CollectionTransactions, ids); err != nil {
			return deleted, apperr.Wrap(apperr.Persistence,
				fmt.Sprintf("could not delete wallet transactions (%d already deleted)", deleted), err)
		}
		deleted += len(ids)
		log.Printf("[Wallet] cascade removed %d transactions for wallet %s", len(ids), walletID)
	}
	return deleted, apperr.New(apperr.Persistence,
		fmt.Sprintf("cascade deletion stopped after %d transactions; wallet %s may still have orphans", deleted, walletID))
}

func (s *WalletService) ownedWallet(ctx context.Context, uid, id string) (*models.Wallet, error) {
	doc, err := s.store.Get(ctx, domain.CollectionWallets, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "wallet not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "could not read wallet", err)
	}
	w := models.WalletFromDoc(doc)
	if w.UID != uid {
		return nil, apperr.New(apperr.NotFound, "wallet not found")
	}
	return w, nil
}

func newPublicID() string {
	return "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}
