package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/thewspl/financialfreedommobile/config"
	"github.com/thewspl/financialfreedommobile/internal/auth"
	"github.com/thewspl/financialfreedommobile/internal/router"
	"github.com/thewspl/financialfreedommobile/internal/store"
	"github.com/thewspl/financialfreedommobile/pkg/cloudinary"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var (
		st       store.Store
		verifier auth.TokenVerifier
	)
	switch cfg.Store.Driver {
	case "memory":
		st = store.NewMemory()
		verifier = auth.InsecureVerifier{}
		log.Printf("[Store] in-memory store with insecure auth; local development only")
	default:
		app, err := firebaseApp(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		st, err = store.NewFirestore(ctx, app)
		if err != nil {
			log.Fatalf("firestore: %v", err)
		}
		verifier, err = auth.NewFirebaseVerifier(ctx, app)
		if err != nil {
			log.Fatalf("firebase auth: %v", err)
		}
	}
	defer st.Close()

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatalf("cloudinary: %v", err)
	}

	engine := router.Setup(cfg, st, cloud, verifier)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}

func firebaseApp(ctx context.Context, cfg *config.FirebaseConfig) (*firebase.App, error) {
	conf := &firebase.Config{ProjectID: cfg.ProjectID}
	var opts []option.ClientOption
	if cfg.ServiceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}
	return firebase.NewApp(ctx, conf, opts...)
}
