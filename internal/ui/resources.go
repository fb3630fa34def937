package ui

import (
	"context"
	"io"
	"net/http"
	"path"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/h2non/filetype"
	"github.com/m-mizutani/goerr/v2"
)

// thumbnailCache keeps downloaded course thumbnails for the lifetime of the app
type thumbnailCache struct {
	mu        sync.Mutex
	resources map[string]fyne.Resource
	client    *http.Client
}

func newThumbnailCache() *thumbnailCache {
	return &thumbnailCache{
		resources: make(map[string]fyne.Resource),
		client:    &http.Client{Timeout: ThumbnailTimeout},
	}
}

// Load fetches the image behind url, reusing earlier downloads
func (c *thumbnailCache) Load(ctx context.Context, url string) (fyne.Resource, error) {
	c.mu.Lock()
	if res, ok := c.resources[url]; ok {
		c.mu.Unlock()
		return res, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid thumbnail url", goerr.V("url", url))
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch thumbnail", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected thumbnail response", goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, ThumbnailMaxBytes))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read thumbnail", goerr.V("url", url))
	}

	return c.store(url, path.Base(req.URL.Path), data)
}

// store validates image data and caches it under url
func (c *thumbnailCache) store(url, name string, data []byte) (fyne.Resource, error) {
	if !filetype.IsImage(data) {
		return nil, goerr.New("thumbnail is not an image", goerr.V("url", url))
	}
	kind, err := filetype.Match(data)
	if err == nil && path.Ext(name) == "" {
		name += "." + kind.Extension
	}

	res := fyne.NewStaticResource(name, data)

	c.mu.Lock()
	c.resources[url] = res
	c.mu.Unlock()
	return res, nil
}
