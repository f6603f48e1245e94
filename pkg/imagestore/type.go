package imagestore

// Config holds image store configuration.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	Region        string
	Bucket        string
	PublicBaseURL string
}

// ResizeRequest describes one resized-image upload.
type ResizeRequest struct {
	// Key is the object name under the bucket, without extension.
	Key string
	// Source is the original encoded image (JPEG or PNG).
	Source []byte
	// Width and Height bound the resized image; aspect ratio is preserved.
	Width  int
	Height int
}
