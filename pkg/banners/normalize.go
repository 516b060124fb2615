// Package banners migrates banner records from the legacy flat media keys
// (imageUrl, mobileImageUrl, videoUrl, imagePosition, ...) to structured
// per-breakpoint image, video and position objects.
package banners

import (
	"github.com/alexsab-ru/sitekit/pkg/document"
)

// Breakpoint names.
const (
	Desktop = "desktop"
	Tablet  = "tablet"
	Mobile  = "mobile"
)

// Structured media keys.
const (
	KeyImage    = "image"
	KeyVideo    = "video"
	KeyPosition = "position"
)

// Legacy flat keys.
const (
	LegacyImage         = "imageUrl"
	LegacyMobileImage   = "mobileImageUrl"
	LegacyTabletImage   = "tabletImageUrl"
	LegacyTabletImageUr = "tabletImageUr" // historical misspelling still found in site data
	LegacyPosition      = "imagePosition"
	LegacyVideo         = "videoUrl"
	LegacyMobileVideo   = "mobileVideoUrl"
)

// PrefixKeys lead every normalized record, in this order.
var PrefixKeys = []string{"id", "show", "type", "view"}

var (
	imageBreakpoints = []string{Desktop, Tablet, Mobile}
	videoBreakpoints = []string{Desktop, Mobile}

	consumedKeys = map[string]bool{
		"id": true, "show": true, "type": true, "view": true,
		KeyImage: true, KeyVideo: true, KeyPosition: true,
		LegacyImage: true, LegacyMobileImage: true, LegacyTabletImage: true, LegacyTabletImageUr: true,
		LegacyPosition: true, LegacyVideo: true, LegacyMobileVideo: true,
	}
)

// Normalize applies NormalizeItem to a record or to every record of a list.
// Other values and non-object list items are returned unchanged.
func Normalize(v any) any {
	if list, ok := document.Array(v); ok {
		out := make([]any, len(list))
		for i, item := range list {
			if obj, ok := document.Object(item); ok {
				out[i] = NormalizeItem(obj)
			} else {
				out[i] = item
			}
		}
		return out
	}
	if obj, ok := document.Object(v); ok {
		return NormalizeItem(obj)
	}
	return v
}

// NormalizeItem returns a new record holding the prefix keys, then the video,
// image and position objects, then every remaining key in its original order.
// Legacy keys are dropped. The input record is not modified.
func NormalizeItem(item *document.Map) *document.Map {
	out := document.NewMap()

	for _, key := range PrefixKeys {
		if v, ok := item.Get(key); ok {
			out.Set(key, v)
		}
	}

	if video := buildVideo(item); video != nil {
		out.Set(KeyVideo, video)
	}
	if image := buildImage(item); image != nil {
		out.Set(KeyImage, image)
	}
	if position := buildPosition(item); position != nil {
		out.Set(KeyPosition, position)
	}

	for _, key := range item.Keys() {
		if consumedKeys[key] || document.Has(out, key) {
			continue
		}
		v, _ := item.Get(key)
		out.Set(key, v)
	}
	return out
}

// structured copies the non-empty string breakpoints of item[key].
func structured(item *document.Map, key string, breakpoints []string) *document.Map {
	out := document.NewMap()
	v, _ := item.Get(key)
	obj, ok := document.Object(v)
	if !ok {
		return out
	}
	for _, bp := range breakpoints {
		if s, ok := document.String(obj, bp); ok && s != "" {
			out.Set(bp, s)
		}
	}
	return out
}

func overlay(obj *document.Map, breakpoint string, item *document.Map, key string) {
	if s, ok := document.String(item, key); ok && s != "" {
		obj.Set(breakpoint, s)
	}
}

func nilIfEmpty(obj *document.Map) *document.Map {
	if len(obj.Keys()) == 0 {
		return nil
	}
	return obj
}

func buildImage(item *document.Map) *document.Map {
	image := structured(item, KeyImage, imageBreakpoints)

	overlay(image, Desktop, item, LegacyImage)
	tabletKey := LegacyTabletImage
	if !truthy(item, LegacyTabletImage) {
		tabletKey = LegacyTabletImageUr
	}
	overlay(image, Tablet, item, tabletKey)
	overlay(image, Mobile, item, LegacyMobileImage)

	return nilIfEmpty(image)
}

func buildVideo(item *document.Map) *document.Map {
	video := structured(item, KeyVideo, videoBreakpoints)
	overlay(video, Desktop, item, LegacyVideo)
	overlay(video, Mobile, item, LegacyMobileVideo)
	return nilIfEmpty(video)
}

// buildPosition keeps a structured position object when one exists, even if
// it normalizes to nothing. Only without it does the single legacy value
// apply to both desktop and mobile.
func buildPosition(item *document.Map) *document.Map {
	if v, ok := item.Get(KeyPosition); ok {
		if _, isObj := document.Object(v); isObj {
			return nilIfEmpty(structured(item, KeyPosition, imageBreakpoints))
		}
	}

	legacy, ok := document.String(item, LegacyPosition)
	if !ok || legacy == "" {
		return nil
	}
	position := document.NewMap()
	position.Set(Desktop, legacy)
	position.Set(Mobile, legacy)
	return position
}

// truthy reports whether item[key] is present and not a zero value.
func truthy(item *document.Map, key string) bool {
	v, ok := item.Get(key)
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	default:
		return true
	}
}
