package firebase

import (
	"context"
	"fmt"

	"taskboard/config"
	"taskboard/utilities"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// InitializeFirebase builds the app from a service account file.
func InitializeFirebase(ctx context.Context, cfg config.Firebase) (*firebase.App, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is not set")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	utilities.LogInfo("firebase initialized")
	return app, nil
}

// GetFirestoreClient opens a Firestore client for the configured project.
// The caller closes it on shutdown.
func GetFirestoreClient(ctx context.Context, cfg config.Firebase) (*firestore.Client, error) {
	app, err := InitializeFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firestore client: %w", err)
	}
	return client, nil
}
