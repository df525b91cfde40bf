// internal/services/storage_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digivault/shop-backend/internal/config"
)

func testStorageService(t *testing.T, cloudFrontURL string) *StorageService {
	t.Helper()
	cfg := &config.Config{}
	cfg.AWS.Region = "us-east-1"
	cfg.AWS.S3Bucket = "digivault-shop-assets"
	cfg.AWS.CloudFrontURL = cloudFrontURL

	s, err := NewStorageService(cfg)
	require.NoError(t, err)
	return s
}

func TestKeyFromURLRoundTrip(t *testing.T) {
	s := testStorageService(t, "")

	key := "products/20260831_abcd1234.png"
	assert.Equal(t, key, s.KeyFromURL(s.getS3URL(key)))
}

func TestKeyFromURLCloudFront(t *testing.T) {
	s := testStorageService(t, "https://cdn.digivault.shop")

	key := "proofs/20260831_abcd1234.png"
	assert.Equal(t, key, s.KeyFromURL("https://cdn.digivault.shop/"+key))

	// Direct bucket URLs still resolve when CloudFront is configured.
	assert.Equal(t, key, s.KeyFromURL("https://digivault-shop-assets.s3.us-east-1.amazonaws.com/"+key))
}

func TestKeyFromURLForeignURL(t *testing.T) {
	s := testStorageService(t, "https://cdn.digivault.shop")

	assert.Equal(t, "", s.KeyFromURL("https://example.com/some/image.png"))
	assert.Equal(t, "", s.KeyFromURL(""))
}

func TestDeleteFilesSkipsForeignURLs(t *testing.T) {
	// Without S3 credentials deletion is a no-op; the point is that foreign
	// URLs never panic or reach the client.
	s := testStorageService(t, "")

	s.DeleteFiles([]string{
		s.getS3URL("products/a.png"),
		"https://example.com/not-ours.png",
		"",
	})
}

func TestSniffImageContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", sniffImageContentType([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "image/png", sniffImageContentType([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}))
	assert.Equal(t, "image/gif", sniffImageContentType([]byte("GIF89a........")))
	assert.Equal(t, "application/octet-stream", sniffImageContentType([]byte("plain text")))
}
