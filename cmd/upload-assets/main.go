// Command upload-assets pushes a built frontend bundle to the GCS bucket the
// storefront pages are served from. Object names are prefixed with the page
// slug so several storefronts can share one bucket.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/build0hq/storefront-session/pkg/config"
	"github.com/build0hq/storefront-session/pkg/logger"
	"github.com/build0hq/storefront-session/pkg/storage/gcs"
)

func main() {
	distDir := flag.String("dist", "dist", "directory holding the built frontend bundle")
	prefix := flag.String("prefix", "", "object name prefix, usually the storefront page slug")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "upload-assets"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	if cfg.GCS.BucketName == "" {
		logg.Error(context.Background(), "bucket name is required", fmt.Errorf("STOREFRONT_GCS_BUCKET_NAME not set"))
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to create storage client", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logg.Error(ctx, "error closing storage client", err)
		}
	}()

	bucket := client.BucketHandle(cfg.GCS.BucketName)

	files, err := collectFiles(*distDir)
	if err != nil {
		logg.Error(ctx, "failed to scan bundle directory", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		logg.Warn(ctx, "bundle directory contains no files")
		return
	}

	uploaded, err := uploadAll(ctx, logg, bucket, *distDir, *prefix, files, cfg.Upload.Concurrency)
	if err != nil {
		logg.Error(ctx, "bundle upload finished with errors", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"bucket":   cfg.GCS.BucketName,
		"uploaded": uploaded,
	})
	logg.Info(ctx, "bundle upload complete")
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

func uploadAll(ctx context.Context, logg *logger.Logger, bucket *gcs.Bucket, root, prefix string, files []string, concurrency int) (int, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     error
		uploaded int
	)
	sem := make(chan struct{}, concurrency)

	for _, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := uploadOne(ctx, bucket, root, prefix, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("upload %s: %w", path, err))
				return
			}
			uploaded++
		}(path)
	}
	wg.Wait()

	return uploaded, errs
}

func uploadOne(ctx context.Context, bucket *gcs.Bucket, root, prefix, path string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	objectName := filepath.ToSlash(rel)
	if prefix != "" {
		objectName = strings.TrimSuffix(prefix, "/") + "/" + objectName
	}

	contentType := "application/octet-stream"
	if detected, err := mimetype.DetectFile(path); err == nil {
		contentType = detected.String()
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	return bucket.Upload(ctx, objectName, contentType, file)
}
