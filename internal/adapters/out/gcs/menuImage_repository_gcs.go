package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	gcscommon "sabordigital/internal/adapters/out/gcs/common"
)

const defaultMenuImageBucket = "sabordigital-media"

// MenuImageRepositoryGCS stores menu item photos in a GCS bucket and
// hands back the public URL the catalog embeds.
type MenuImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewMenuImageRepositoryGCS(client *storage.Client, bucket string) *MenuImageRepositoryGCS {
	return &MenuImageRepositoryGCS{Client: client, Bucket: strings.TrimSpace(bucket)}
}

func (r *MenuImageRepositoryGCS) bucket() string {
	if b := strings.TrimSpace(r.Bucket); b != "" {
		return b
	}
	return defaultMenuImageBucket
}

// Upload streams an image into the bucket. Object names are prefixed with
// a nanosecond timestamp so a re-uploaded file never clobbers an earlier
// one that a live menu item still references.
func (r *MenuImageRepositoryGCS) Upload(ctx context.Context, fileName, contentType string, body io.Reader) (string, int64, error) {
	if r == nil || r.Client == nil {
		return "", 0, errors.New("MenuImageRepositoryGCS: nil storage client")
	}

	fileName = sanitizePathSegment(ensureExtensionByMIME(fileName, contentType))
	if fileName == "" {
		fileName = newObjectID()
	}

	bucket := r.bucket()
	objectPath := fmt.Sprintf("menu/%d_%s", time.Now().UTC().UnixNano(), fileName)

	w := r.Client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}

	n, err := io.Copy(w, body)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		_ = r.Client.Bucket(bucket).Object(objectPath).Delete(ctx) // best-effort cleanup
		return "", 0, err
	}

	publicURL := gcscommon.GCSPublicURL(bucket, objectPath, defaultMenuImageBucket)
	return publicURL, n, nil
}

// Delete removes an object given the public URL that was handed out at
// upload time. Unknown URLs are ignored.
func (r *MenuImageRepositoryGCS) Delete(ctx context.Context, publicURL string) error {
	if r == nil || r.Client == nil {
		return errors.New("MenuImageRepositoryGCS: nil storage client")
	}

	bucket, objectPath, ok := gcscommon.ParseGCSURL(publicURL)
	if !ok {
		return nil
	}
	err := r.Client.Bucket(bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}
