package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vidtube-backend/pkg/config"
)

// UploadResult holds what the platform keeps from an uploaded asset.
// Duration is only populated for video resources.
type UploadResult struct {
	URL      string
	Duration float64
}

// Uploader pushes a local media file to the object storage service.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*UploadResult, error)
}

// CloudinaryUploader implements Uploader against the Cloudinary upload API
// using signed multipart requests.
type CloudinaryUploader struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
}

func NewCloudinaryUploader(cfg *config.Config) *CloudinaryUploader {
	return &CloudinaryUploader{
		cloudName: cfg.CloudinaryCloud,
		apiKey:    cfg.CloudinaryKey,
		apiSecret: cfg.CloudinarySecret,
		baseURL:   "https://api.cloudinary.com/v1_1",
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type uploadResponse struct {
	SecureURL string  `json:"secure_url"`
	URL       string  `json:"url"`
	Duration  float64 `json:"duration"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends localPath to Cloudinary's auto endpoint and removes the local
// file once the upload attempt finished, mirroring how the platform treats
// temp files from multipart requests.
func (u *CloudinaryUploader) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	if localPath == "" {
		return nil, fmt.Errorf("local path is required")
	}
	defer os.Remove(localPath)

	if u.cloudName == "" || u.apiKey == "" || u.apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not configured")
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}

	_ = writer.WriteField("api_key", u.apiKey)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("signature", u.sign(timestamp))
	if err := writer.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/auto/upload", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed: status %d: %s", resp.StatusCode, parsed.Error.Message)
	}

	result := &UploadResult{URL: parsed.SecureURL, Duration: parsed.Duration}
	if result.URL == "" {
		result.URL = parsed.URL
	}
	return result, nil
}

// sign produces the request signature Cloudinary expects: the SHA-1 hex of
// the signed params followed by the API secret.
func (u *CloudinaryUploader) sign(timestamp string) string {
	h := sha1.Sum([]byte("timestamp=" + timestamp + u.apiSecret))
	return hex.EncodeToString(h[:])
}
