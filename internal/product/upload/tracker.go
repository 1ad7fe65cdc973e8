// Package upload tracks images that are uploaded independently of the form they
// belong to. Each file is sent by its own goroutine; nothing is retried.
package upload

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Status string

const (
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

var (
	ErrUploadsPending = errors.New("wait for all images to finish uploading")
	ErrUploadsFailed  = errors.New("remove the images that failed to upload")
	ErrImageNotFound  = errors.New("image not found")
)

type Uploader interface {
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
}

type Image struct {
	ID       string  `json:"id"`
	Filename string  `json:"filename,omitempty"`
	Status   Status  `json:"status"`
	URL      string  `json:"url,omitempty"`
	Error    string  `json:"error,omitempty"`
	Color    *string `json:"color,omitempty"`
}

// Tracker holds one form's images in display order; the first is the cover.
type Tracker struct {
	mu       sync.RWMutex
	wg       sync.WaitGroup
	images   []*Image
	uploader Uploader
	timeout  time.Duration
	logger   logger.ZapLogger
}

func NewTracker(uploader Uploader, timeout time.Duration, log logger.ZapLogger) *Tracker {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Tracker{uploader: uploader, timeout: timeout, logger: log}
}

// Add registers the file as uploading and sends it in the background.
func (t *Tracker) Add(filename string, data []byte, color *string) string {
	img := &Image{ID: uuid.New().String(), Filename: filename, Status: StatusUploading, Color: color}

	t.mu.Lock()
	t.images = append(t.images, img)
	t.mu.Unlock()

	t.wg.Add(1)
	go t.upload(img.ID, filename, data)
	return img.ID
}

// AddHosted registers an image that already has a URL.
func (t *Tracker) AddHosted(url string, color *string) string {
	img := &Image{ID: uuid.New().String(), Status: StatusSuccess, URL: url, Color: color}
	t.mu.Lock()
	t.images = append(t.images, img)
	t.mu.Unlock()
	return img.ID
}

func (t *Tracker) upload(id, filename string, data []byte) {
	defer t.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	url, err := t.uploader.UploadImage(ctx, filename, data)

	t.mu.Lock()
	defer t.mu.Unlock()
	img := t.find(id)
	if img == nil {
		// removed while in flight
		return
	}
	if err != nil {
		img.Status = StatusError
		img.Error = err.Error()
		metrics.ImageUploads.WithLabelValues(string(StatusError)).Inc()
		t.logger.Warn("image upload failed", zap.String("filename", filename), zap.Error(err))
		return
	}
	img.Status = StatusSuccess
	img.URL = url
	metrics.ImageUploads.WithLabelValues(string(StatusSuccess)).Inc()
}

func (t *Tracker) find(id string) *Image {
	for _, img := range t.images {
		if img.ID == id {
			return img
		}
	}
	return nil
}

func (t *Tracker) Remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, img := range t.images {
		if img.ID == id {
			t.images = append(t.images[:i], t.images[i+1:]...)
			return nil
		}
	}
	return ErrImageNotFound
}

// SetCover moves the image to the front of the list.
func (t *Tracker) SetCover(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, img := range t.images {
		if img.ID == id {
			copy(t.images[1:i+1], t.images[:i])
			t.images[0] = img
			return nil
		}
	}
	return ErrImageNotFound
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.images)
}

// Snapshot copies the current images in display order.
func (t *Tracker) Snapshot() []Image {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Image, len(t.images))
	for i, img := range t.images {
		out[i] = *img
	}
	return out
}

// Ready rejects while any image is uploading or has failed.
func (t *Tracker) Ready() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, img := range t.images {
		if img.Status == StatusUploading {
			return ErrUploadsPending
		}
	}
	for _, img := range t.images {
		if img.Status == StatusError {
			return ErrUploadsFailed
		}
	}
	return nil
}

// ProductImages returns the uploaded images positioned by list order.
func (t *Tracker) ProductImages() []model.ProductImage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.ProductImage, 0, len(t.images))
	for _, img := range t.images {
		if img.Status != StatusSuccess {
			continue
		}
		out = append(out, model.ProductImage{URL: img.URL, Position: len(out), Color: img.Color})
	}
	return out
}

// Wait blocks until every in-flight upload has settled.
func (t *Tracker) Wait() {
	t.wg.Wait()
}
