package properties

import (
	"strings"
)

// ImageDelimiter separates image references in the property_image wire field.
const ImageDelimiter = ","

const dataScheme = "data:"

// ImageRef is either a remote URL or a data: URL holding an image that has
// not been uploaded yet.
type ImageRef string

// IsData reports whether the reference is an inline data: URL.
func (r ImageRef) IsData() bool {
	return strings.HasPrefix(string(r), dataScheme)
}

// MediaType returns the media type of a data: URL, or "" for remote refs.
func (r ImageRef) MediaType() string {
	if !r.IsData() {
		return ""
	}
	header, _, _ := strings.Cut(strings.TrimPrefix(string(r), dataScheme), ImageDelimiter)
	mediaType, _, _ := strings.Cut(header, ";")
	return mediaType
}

// String implements fmt.Stringer. Data URLs are shortened for display.
func (r ImageRef) String() string {
	if r.IsData() && len(r) > 48 {
		return string(r[:48]) + "..."
	}
	return string(r)
}

// EncodeImages joins refs into the delimited form the remote store persists.
func EncodeImages(refs []ImageRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ImageDelimiter)
}

// DecodeImages splits the delimited wire form back into an ordered sequence.
// A value without a delimiter becomes a one-element sequence. The comma that
// separates a data: URL header from its payload is not treated as a delimiter.
// Segments are kept verbatim; blank ones are dropped.
func DecodeImages(s string) []ImageRef {
	refs := []ImageRef{}
	if strings.TrimSpace(s) == "" {
		return refs
	}

	parts := strings.Split(s, ImageDelimiter)
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		if strings.HasPrefix(part, dataScheme) && i+1 < len(parts) {
			part += ImageDelimiter + parts[i+1]
			i++
		}
		if strings.TrimSpace(part) == "" {
			continue
		}
		refs = append(refs, ImageRef(part))
	}
	return refs
}

// NormalizeImages decodes any entries that still hold a delimited list and
// flattens the result, preserving order.
func NormalizeImages(refs []ImageRef) []ImageRef {
	out := make([]ImageRef, 0, len(refs))
	for _, r := range refs {
		out = append(out, DecodeImages(string(r))...)
	}
	return out
}
