package blob

import (
	"fmt"

	appcfg "github.com/RaphMerc007/WeCook/internal/config"
)

// New builds a blob store from the configured mode. Selecting s3 without a
// complete S3 configuration is a startup error rather than a silent
// fallback.
func New(cfg *appcfg.Config) (Store, error) {
	switch cfg.BlobMode {
	case appcfg.BlobModeS3:
		if !cfg.S3.IsConfigured() {
			return nil, fmt.Errorf("BLOB_MODE=s3 but S3 configuration is incomplete")
		}
		return NewS3Store(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
	case appcfg.BlobModeLocal:
		return NewLocalStore(cfg.BlobLocalDir)
	default:
		return nil, fmt.Errorf("unknown blob mode %q", cfg.BlobMode)
	}
}
