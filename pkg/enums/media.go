package enums

import "fmt"

// MediaKind describes the asset type of a media record.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

var validMediaKinds = []MediaKind{MediaKindVideo, MediaKindAudio}

// String implements fmt.Stringer.
func (k MediaKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known MediaKind.
func (k MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseMediaKind converts raw input into a MediaKind.
func ParseMediaKind(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media kind %q", value)
}

// MediaContext controls where on the public site a media asset is used.
type MediaContext string

const (
	MediaContextHero    MediaContext = "hero"
	MediaContextGallery MediaContext = "gallery"
	MediaContextProfile MediaContext = "profile"
	MediaContextPromo   MediaContext = "promo"
)

var validMediaContexts = []MediaContext{
	MediaContextHero,
	MediaContextGallery,
	MediaContextProfile,
	MediaContextPromo,
}

// String implements fmt.Stringer.
func (c MediaContext) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MediaContext.
func (c MediaContext) IsValid() bool {
	for _, candidate := range validMediaContexts {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMediaContext converts raw input into a MediaContext.
func ParseMediaContext(value string) (MediaContext, error) {
	for _, candidate := range validMediaContexts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media context %q", value)
}
