package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier resolves a bearer token to the authenticated user's uid.
// Sign-in happens on-device against Firebase Auth; the backend only verifies.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds a TokenVerifier backed by the Firebase Admin SDK.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (TokenVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	return token.UID, nil
}

// InsecureVerifier treats the bearer token itself as the uid. Local
// development with the in-memory store only; never wire it in production.
type InsecureVerifier struct{}

func (InsecureVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", ErrInvalidToken
	}
	return idToken, nil
}
