package imagestore

import (
	"fmt"
	"sync"

	"catalog-sync-srv/config"
	"catalog-sync-srv/pkg/imagestore"
)

var (
	instance imagestore.IImageStore
	once     sync.Once
	mu       sync.RWMutex
	initErr  error
)

// Connect initializes the image store client using singleton pattern.
func Connect(cfg config.ImageStoreConfig) (imagestore.IImageStore, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	if initErr != nil {
		once = sync.Once{}
		initErr = nil
	}

	var err error
	once.Do(func() {
		client, e := imagestore.New(imagestore.Config{
			Endpoint:      cfg.Endpoint,
			AccessKey:     cfg.AccessKey,
			SecretKey:     cfg.SecretKey,
			UseSSL:        cfg.UseSSL,
			Region:        cfg.Region,
			Bucket:        cfg.Bucket,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if e != nil {
			err = fmt.Errorf("failed to initialize image store client: %w", e)
			initErr = err
			return
		}

		instance = client
	})

	return instance, err
}

// GetClient returns the singleton image store client.
func GetClient() imagestore.IImageStore {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		panic("Image store client not initialized. Call Connect() first")
	}
	return instance
}
