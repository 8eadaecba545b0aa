package domain

import "time"

type TagStatus string

const (
	TagStatusPending TagStatus = "pending"
	TagStatusTagged  TagStatus = "tagged"
	TagStatusFailed  TagStatus = "failed"
)

// Dimensions form the fixed tag vocabulary. Values are free text and a
// dimension may repeat or be absent.
const (
	DimensionType     = "type"
	DimensionColor    = "color"
	DimensionCategory = "category"
	DimensionOccasion = "occasion"
	DimensionStyle    = "style"
)

var dimensions = map[string]struct{}{
	DimensionType:     {},
	DimensionColor:    {},
	DimensionCategory: {},
	DimensionOccasion: {},
	DimensionStyle:    {},
}

func ValidDimension(name string) bool {
	_, ok := dimensions[name]
	return ok
}

// TagSet maps a dimension to its values for one clothing item.
type TagSet map[string][]string

func (s TagSet) Empty() bool {
	for _, values := range s {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

type ClothingItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	ImagePath string    `json:"image_path"`
	MimeType  string    `json:"mime_type"`
	Tags      TagSet    `json:"tags"`
	TagStatus TagStatus `json:"tag_status"`
	TagError  string    `json:"tag_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadResult is what intake hands back: the stored item plus a warning
// when automatic tagging degraded to an empty tag set.
type UploadResult struct {
	Item       *ClothingItem `json:"item"`
	TagWarning string        `json:"tag_warning,omitempty"`
}

// ItemUploadedEvent is the queue payload scheduling a tagging retry.
// PublishedAt lets the consumer measure queue lag.
type ItemUploadedEvent struct {
	ItemID      string    `json:"item_id"`
	PublishedAt time.Time `json:"published_at"`
}
