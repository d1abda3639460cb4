package shared

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	appcfg "sabordigital/internal/infra/config"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/GCS/SecretManager/Postgres/Redis)
// - owns env/config-resolved runtime settings (bucket name, WhatsApp number)
//
// IMPORTANT:
// Infra must NOT depend on routers, handlers, or usecases.
type Infra struct {
	// Config
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	DB            *sql.DB
	Redis         *redis.Client

	// Runtime settings (resolved once)
	MediaBucket    string
	WhatsAppPhone  string
	SendGridAPIKey string
}

// NewInfra initializes shared infra.
//
// Firestore is strict when a project id is configured; with no project id
// the service runs in local mode (file-backed cart/order repositories)
// and the Firestore-only surfaces stay unconfigured. Firebase/Auth,
// SecretManager, GCS, Postgres and Redis are best-effort.
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: resolveProjectID(cfg),
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds) // GOOGLE_APPLICATION_CREDENTIALS
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[shared.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Firestore (strict when a project is configured)
	if inf.ProjectID != "" {
		fsClient, err := firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = fsClient
		log.Printf("[shared.infra] Firestore connected project=%s", inf.ProjectID)
	} else {
		log.Printf("[shared.infra] WARN: no GCP project configured; running in local file mode (cart=%s orders=%s)",
			cfg.CartFilePath, cfg.OrderFilePath)
	}

	// 2) Optional: Secret Manager client (WhatsApp number / SendGrid key)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (secret-resolved settings fall back to env)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 3) Optional: GCS (menu image upload)
	{
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v (image upload disabled)", err)
			gcsClient = nil
		}
		inf.GCS = gcsClient
	}

	// 4) Optional: Firebase App/Auth (admin surface)
	if inf.ProjectID != "" {
		fbCfg := &firebase.Config{ProjectID: inf.ProjectID}
		fbApp, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 5) Optional: Postgres order archive
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Printf("[shared.infra] WARN: sql.Open failed: %v (postgres order archive disabled)", err)
		} else if err := db.PingContext(ctx); err != nil {
			log.Printf("[shared.infra] WARN: postgres ping failed: %v (postgres order archive disabled)", err)
			_ = db.Close()
		} else {
			inf.DB = db
			log.Printf("[shared.infra] Postgres connected")
		}
	}

	// 6) Optional: Redis menu cache
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[shared.infra] WARN: redis ping failed addr=%s: %v (menu cache disabled)", addr, err)
			_ = rdb.Close()
		} else {
			inf.Redis = rdb
			log.Printf("[shared.infra] Redis connected addr=%s", addr)
		}
	}

	// 7) Runtime settings (resolve once; Secret Manager wins over env)
	inf.MediaBucket = strings.TrimSpace(cfg.MediaBucket)
	if inf.MediaBucket == "" {
		log.Printf("[shared.infra] WARN: MEDIA_BUCKET is empty (menu image upload may fail)")
	}
	inf.WhatsAppPhone = inf.resolveSecretSetting(ctx, "WHATSAPP_PHONE_SECRET", cfg.WhatsAppPhone)
	inf.SendGridAPIKey = inf.resolveSecretSetting(ctx, "SENDGRID_API_KEY_SECRET", cfg.SendGridAPIKey)

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	return nil
}

// resolveSecretSetting reads the secret named by envKey (a Secret Manager
// resource or a bare secret id) and falls back to the env/config value.
func (i *Infra) resolveSecretSetting(ctx context.Context, envKey, fallback string) string {
	name := strings.TrimSpace(os.Getenv(envKey))
	if name == "" || i.SecretManager == nil {
		return strings.TrimSpace(fallback)
	}

	if !strings.HasPrefix(name, "projects/") {
		if i.ProjectID == "" {
			return strings.TrimSpace(fallback)
		}
		name = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", i.ProjectID, name)
	}

	res, err := i.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[shared.infra] WARN: secret %s access failed: %v (using env value)", envKey, err)
		return strings.TrimSpace(fallback)
	}

	v := strings.TrimSpace(string(res.GetPayload().GetData()))
	if v == "" {
		return strings.TrimSpace(fallback)
	}
	log.Printf("[shared.infra] %s resolved from Secret Manager", envKey)
	return v
}

func resolveProjectID(cfg *appcfg.Config) string {
	// Priority:
	// 1) cfg.FirestoreProjectID (resolved by config.Load)
	// 2) FIRESTORE_PROJECT_ID
	// 3) GCP_PROJECT_ID
	// 4) GOOGLE_CLOUD_PROJECT (often set in Cloud Run)
	// 5) FIREBASE_PROJECT_ID (fallback)
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirestoreProjectID); v != "" {
			return v
		}
	}

	for _, k := range []string{
		"FIRESTORE_PROJECT_ID",
		"GCP_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
		"FIREBASE_PROJECT_ID",
	} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}

	return ""
}

func redactPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
