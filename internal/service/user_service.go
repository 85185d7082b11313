package service

import (
	"context"
	"errors"
	"io"

	"github.com/thewspl/financialfreedommobile/internal/apperr"
	"github.com/thewspl/financialfreedommobile/internal/domain"
	"github.com/thewspl/financialfreedommobile/internal/models"
	"github.com/thewspl/financialfreedommobile/internal/store"
	"github.com/thewspl/financialfreedommobile/pkg/cloudinary"
)

// UserService maintains the users/{uid} profile document. Credentials live in
// Firebase Auth; this only covers the displayable profile.
type UserService struct {
	store store.Store
	cloud cloudinary.Client
}

func NewUserService(st store.Store, cloud cloudinary.Client) *UserService {
	return &UserService{store: st, cloud: cloud}
}

type ProfileInput struct {
	Name  string
	Email string
	Image io.Reader
}

// UpdateProfile merge-writes the profile document, uploading a new avatar
// first when one is supplied. Creates the document on first write.
func (s *UserService) UpdateProfile(ctx context.Context, uid string, in ProfileInput) (*models.User, error) {
	fields := map[string]interface{}{"uid": uid}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.Image != nil {
		url, err := s.cloud.UploadImage(ctx, in.Image, domain.FolderUsers, newPublicID())
		if err != nil {
			return nil, apperr.Wrap(apperr.Upload, "could not upload profile image", err)
		}
		fields["image"] = url
	}
	if err := s.store.Set(ctx, domain.CollectionUsers, uid, fields); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "could not save profile", err)
	}
	doc, err := s.store.Get(ctx, domain.CollectionUsers, uid)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "could not read profile", err)
	}
	return models.UserFromDoc(doc), nil
}

// GetProfile returns the stored profile for uid.
func (s *UserService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	doc, err := s.store.Get(ctx, domain.CollectionUsers, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "could not read profile", err)
	}
	return models.UserFromDoc(doc), nil
}
