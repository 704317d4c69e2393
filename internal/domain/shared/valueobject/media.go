package valueobject

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/inmolista/backend/internal/domain/shared"
)

// Photo caps per context
const (
	PropertyMaxPhotos = 20
	ListingMaxPhotos  = 25
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PhotoGallery is a value object holding an ordered, de-duplicated list of
// photo URLs. It is immutable - all operations return new galleries.
type PhotoGallery struct {
	urls      []string
	maxPhotos int
}

// NewPhotoGallery creates a gallery from the given URLs, preserving order and
// dropping duplicates. maxPhotos is context-dependent (PropertyMaxPhotos or
// ListingMaxPhotos). All violated rules are collected before failing.
func NewPhotoGallery(urls []string, maxPhotos int) (PhotoGallery, error) {
	var rules shared.RuleCollector

	if maxPhotos <= 0 {
		rules.Add("photo cap must be positive")
	}

	seen := make(map[string]bool, len(urls))
	deduped := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			rules.Add("photo URL cannot be empty")
			continue
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		if err := validateImageURL(u); err != nil {
			rules.Add(err.Error())
			continue
		}
		deduped = append(deduped, u)
	}

	if maxPhotos > 0 && len(deduped) > maxPhotos {
		rules.Addf("gallery cannot hold more than %d photos, got %d", maxPhotos, len(deduped))
	}

	if err := rules.Err("PhotoGallery", "Invalid photo gallery"); err != nil {
		return PhotoGallery{}, err
	}
	return PhotoGallery{urls: deduped, maxPhotos: maxPhotos}, nil
}

// EmptyPhotoGallery returns a gallery with no photos and the given cap
func EmptyPhotoGallery(maxPhotos int) PhotoGallery {
	return PhotoGallery{urls: nil, maxPhotos: maxPhotos}
}

func validateImageURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return shared.NewDomainError("INVALID_PHOTO_URL", "photo URL "+raw+" is not a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return shared.NewDomainError("INVALID_PHOTO_URL", "photo URL "+raw+" must use http or https")
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	if !imageExtensions[ext] {
		return shared.NewDomainError("INVALID_PHOTO_URL", "photo URL "+raw+" must point to a jpg, jpeg, png or webp image")
	}
	return nil
}

// URLs returns a copy of the photo URLs in display order
func (g PhotoGallery) URLs() []string {
	out := make([]string, len(g.urls))
	copy(out, g.urls)
	return out
}

// Count returns the number of photos
func (g PhotoGallery) Count() int {
	return len(g.urls)
}

// IsEmpty returns true if the gallery has no photos
func (g PhotoGallery) IsEmpty() bool {
	return len(g.urls) == 0
}

// MaxPhotos returns the context-dependent photo cap
func (g PhotoGallery) MaxPhotos() int {
	return g.maxPhotos
}

// Primary returns the first photo URL, or "" for an empty gallery
func (g PhotoGallery) Primary() string {
	if len(g.urls) == 0 {
		return ""
	}
	return g.urls[0]
}

// Append returns a new gallery with the URL added at the end
func (g PhotoGallery) Append(photoURL string) (PhotoGallery, error) {
	return NewPhotoGallery(append(g.URLs(), photoURL), g.maxPhotos)
}

// Remove returns a new gallery without the given URL
func (g PhotoGallery) Remove(photoURL string) PhotoGallery {
	remaining := make([]string, 0, len(g.urls))
	for _, u := range g.urls {
		if u != photoURL {
			remaining = append(remaining, u)
		}
	}
	return PhotoGallery{urls: remaining, maxPhotos: g.maxPhotos}
}

// Equals returns true if both galleries hold the same URLs in the same order
func (g PhotoGallery) Equals(other PhotoGallery) bool {
	if len(g.urls) != len(other.urls) {
		return false
	}
	for i, u := range g.urls {
		if other.urls[i] != u {
			return false
		}
	}
	return true
}

// photoGalleryJSON matches the persisted media record shape
type photoGalleryJSON struct {
	PhotoURLs []string `json:"photoUrls"`
}

// MarshalJSON implements json.Marshaler
func (g PhotoGallery) MarshalJSON() ([]byte, error) {
	urls := g.urls
	if urls == nil {
		urls = []string{}
	}
	return json.Marshal(photoGalleryJSON{PhotoURLs: urls})
}

// UnmarshalJSON implements json.Unmarshaler. The listing-level cap is used
// because it is the larger of the two contexts; entity factories re-validate
// against their own cap.
func (g *PhotoGallery) UnmarshalJSON(data []byte) error {
	var v photoGalleryJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	gallery, err := NewPhotoGallery(v.PhotoURLs, ListingMaxPhotos)
	if err != nil {
		return err
	}
	*g = gallery
	return nil
}

// PhotoGalleryDTO is a data transfer object for persistence
type PhotoGalleryDTO struct {
	PhotoURLs []string `json:"photoUrls" validate:"dive,url"`
}

// ToDTO converts PhotoGallery to PhotoGalleryDTO for storage
func (g PhotoGallery) ToDTO() PhotoGalleryDTO {
	urls := g.URLs()
	if urls == nil {
		urls = []string{}
	}
	return PhotoGalleryDTO{PhotoURLs: urls}
}

// ToPhotoGallery converts PhotoGalleryDTO back to PhotoGallery with the
// given context cap
func (dto PhotoGalleryDTO) ToPhotoGallery(maxPhotos int) (PhotoGallery, error) {
	return NewPhotoGallery(dto.PhotoURLs, maxPhotos)
}
