// Package assets turns the flat object listing into coherent video records.
// A video, its thumbnail, and its label share a base name (the object key
// minus its extension); the aggregator groups keys on that base name and
// resolves delegated thumbnail URLs.
package assets

import (
	"context"
	"path"
	"strings"
	"time"

	"vidgate/internal/logging"
	"vidgate/internal/metrics"
	"vidgate/pkg/models"
)

// ObjectStore is the slice of the storage client the aggregator needs.
type ObjectStore interface {
	ListObjects(ctx context.Context) ([]models.ObjectInfo, error)
	ReadObject(ctx context.Context, key string) ([]byte, error)
	PresignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type kind int

const (
	kindIgnored kind = iota
	kindVideo
	kindThumbnail
	kindLabel
)

// Aggregator builds video records from the raw bucket listing
type Aggregator struct {
	store      ObjectStore
	log        *logging.Logger
	presignTTL time.Duration
}

// New creates an aggregator over the given store
func New(store ObjectStore, log *logging.Logger, presignTTL time.Duration) *Aggregator {
	return &Aggregator{
		store:      store,
		log:        log,
		presignTTL: presignTTL,
	}
}

// ListVideos lists the bucket, groups keys by base name, and returns one
// record per group that has a video member. Groups carrying only a thumbnail
// or label are dropped. Label reads and thumbnail presigns degrade per
// object: a failure is logged and the record is emitted without that part.
func (a *Aggregator) ListVideos(ctx context.Context) ([]models.VideoRecord, error) {
	objects, err := a.store.ListObjects(ctx)
	if err != nil {
		return nil, err
	}
	metrics.ListingObjectsScanned.Observe(float64(len(objects)))

	groups := make(map[string]*models.AssetGroup)
	order := make([]string, 0, len(objects))

	for _, obj := range objects {
		baseName, k := classify(obj.Key)
		if k == kindIgnored {
			continue
		}

		group, ok := groups[baseName]
		if !ok {
			group = &models.AssetGroup{}
			groups[baseName] = group
			order = append(order, baseName)
		}

		switch k {
		case kindVideo:
			group.Video = &models.ObjectInfo{Key: obj.Key, Size: obj.Size}
		case kindThumbnail:
			group.Thumbnail = &models.ObjectInfo{Key: obj.Key}
		case kindLabel:
			content, err := a.store.ReadObject(ctx, obj.Key)
			if err != nil {
				a.log.WithError(err).Errorf("could not read label file %s", obj.Key)
				continue
			}
			group.Label = strings.TrimSpace(string(content))
		}
	}

	records := make([]models.VideoRecord, 0, len(groups))

	for _, baseName := range order {
		group := groups[baseName]
		if group.Video == nil {
			continue
		}

		record := models.VideoRecord{
			Key:   group.Video.Key,
			Size:  group.Video.Size,
			Label: baseName,
		}

		if group.Label != "" {
			record.Label = group.Label
		}

		if group.Thumbnail != nil {
			url, err := a.store.PresignedGetURL(ctx, group.Thumbnail.Key, a.presignTTL)
			if err != nil {
				a.log.WithError(err).Errorf("could not generate presigned URL for thumbnail %s", group.Thumbnail.Key)
				metrics.PresignFailuresTotal.Inc()
			} else {
				record.ThumbnailURL = &url
			}
		}

		records = append(records, record)
	}

	return records, nil
}

// classify splits a key into its base name and classification. The extension
// is lower-cased for matching only; the key itself stays verbatim.
func classify(key string) (string, kind) {
	ext := path.Ext(key)
	baseName := strings.TrimSuffix(key, ext)

	switch strings.ToLower(ext) {
	case ".mp4", ".mov", ".avi", ".mkv":
		return baseName, kindVideo
	case ".png", ".jpg", ".jpeg":
		return baseName, kindThumbnail
	case ".txt":
		return baseName, kindLabel
	default:
		return baseName, kindIgnored
	}
}
