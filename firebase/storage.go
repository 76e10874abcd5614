package firebase

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"strings"
)

// StorageClient abstracts Firebase Storage operations for dependency injection and testing.
type StorageClient interface {
	UploadFoodImage(file multipart.File, filename, contentType string) (string, error)
	UploadComboImage(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(objectPath string) error
}

// FirebaseStorageClient is the real implementation that delegates to package-level functions.
type FirebaseStorageClient struct{}

func NewStorageClient() StorageClient {
	return &FirebaseStorageClient{}
}

func (f *FirebaseStorageClient) UploadFoodImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadFoodImage(file, filename, contentType)
}

func (f *FirebaseStorageClient) UploadComboImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadComboImage(file, filename, contentType)
}

func (f *FirebaseStorageClient) DeleteFile(objectPath string) error {
	return DeleteFile(objectPath)
}

// ExtractObjectPath recovers the bucket object path from a public storage URL,
// so a replaced or removed image can be deleted from the bucket.
func ExtractObjectPath(publicURL string) (string, error) {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid storage URL: %v", err)
	}

	bucketName := os.Getenv("FIREBASE_STORAGE_BUCKET")
	if bucketName == "" {
		return "", fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}

	prefix := "/" + bucketName + "/"
	if !strings.HasPrefix(parsed.Path, prefix) {
		return "", fmt.Errorf("URL does not reference bucket %s", bucketName)
	}

	return strings.TrimPrefix(parsed.Path, prefix), nil
}
