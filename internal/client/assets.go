package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wheeladmin/internal/errorx"
)

// maxImageSize bounds images fetched back from the service.
const maxImageSize = 4 << 20

// AssetURL joins the service asset base URL and an asset path returned by
// the service.
func AssetURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// AssetFetcher downloads image assets served by the wheel service.
type AssetFetcher struct {
	baseURL string
	http    *http.Client
}

func NewAssetFetcher(baseURL string, httpClient *http.Client) *AssetFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AssetFetcher{baseURL: baseURL, http: httpClient}
}

func (f *AssetFetcher) URL(path string) string {
	return AssetURL(f.baseURL, path)
}

// Fetch returns the bytes and content type of the asset at path.
func (f *AssetFetcher) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(path), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, "", errorx.New(errorx.Unavailable, "fetch asset %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errorx.New(errorx.Code(resp.StatusCode), "fetch asset %s: %s", path, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read asset %s: %w", path, err)
	}
	if len(body) > maxImageSize {
		return nil, "", errorx.NewInvalidArgument("asset %s is larger than %d bytes", path, maxImageSize)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
