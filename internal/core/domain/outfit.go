package domain

import "time"

type Outfit struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Occasion  string       `json:"occasion,omitempty"`
	Items     []OutfitItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}

// OutfitItem is an ordered reference into the catalog. Position starts at 1
// and carries wearing order.
type OutfitItem struct {
	ItemID    string `json:"item_id"`
	Position  int    `json:"position"`
	Name      string `json:"name,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}

// Composition is the transient result of one compose call. It is never
// persisted; saving an outfit is a separate explicit operation.
// CatalogSize is the size of the wardrobe snapshot the selection ran
// against, not the size of the selection.
type Composition struct {
	Occasion    string         `json:"occasion"`
	Preferences string         `json:"preferences,omitempty"`
	Items       []ClothingItem `json:"items"`
	DroppedIDs  []string       `json:"dropped_ids,omitempty"`
	CatalogSize int            `json:"catalog_size"`
}

// UserRequest is one append-only history record of a composition attempt.
type UserRequest struct {
	ID          string    `json:"id"`
	Occasion    string    `json:"occasion"`
	Preferences string    `json:"preferences,omitempty"`
	SelectedIDs []string  `json:"selected_ids"`
	Succeeded   bool      `json:"succeeded"`
	CreatedAt   time.Time `json:"created_at"`
}
