package models

// ObjectInfo describes a single object in the store listing
type ObjectInfo struct {
	Key  string
	Size int64
}

// AssetGroup collects loosely-related object keys that share a base name.
// It is built fresh on every listing request and never persisted.
type AssetGroup struct {
	Video     *ObjectInfo
	Thumbnail *ObjectInfo
	Label     string
}

// VideoRecord is the client-facing shape of a playable asset. ThumbnailURL
// is null when the group has no thumbnail or its presign failed.
type VideoRecord struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	Label        string  `json:"label"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
