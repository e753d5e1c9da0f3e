// pkg/woo/media.go
package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// UploadImage pushes a local image file into the WordPress media
// library and returns the stored media item. Uploads authenticate with
// the WordPress application password when configured; the WooCommerce
// consumer keys usually cannot write to wp/v2/media.
//
// Failures here mean "no image for this item" to the sync engine, never
// a fatal error; the caller decides how to degrade.
func (c *Client) UploadImage(ctx context.Context, path string) (*Media, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	filename := filepath.Base(path)
	mime, ok := mimeByExtension[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		mime = "image/jpeg"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mediaBase+"/media", file)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	req.Header.Set("Content-Type", mime)

	if c.wpUsername != "" && c.wpAppPassword != "" {
		req.SetBasicAuth(c.wpUsername, c.wpAppPassword)
	} else {
		req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	}

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload of %s failed: %w", filename, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response for %s: %w", filename, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("Media upload unauthorized, check WP_USERNAME and WP_APP_PASSWORD",
			zap.String("file", filename))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: apiErrorMessage(data)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: apiErrorMessage(data)}
	}

	var media Media
	if err := json.Unmarshal(data, &media); err != nil {
		return nil, fmt.Errorf("failed to decode upload response for %s: %w", filename, err)
	}

	return &media, nil
}
