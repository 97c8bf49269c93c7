package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPlaceholderURL is shown whenever a product has no usable image.
	DefaultPlaceholderURL = "https://placehold.co/100x100?text=No+Image"
	// DefaultImageProxy rewrites remote images to bypass hotlink protection.
	DefaultImageProxy = "https://wsrv.nl/"

	defaultThumbSize = 100
	defaultThumbFit  = "cover"

	// stray characters left behind by array-stringified image fields
	imageTrimSet = `[]"'`
)

// ImageResolver maps raw image references to displayable URLs.
type ImageResolver struct {
	Placeholder string
	ProxyBase   string
	Width       int
	Height      int
	Fit         string
}

// DefaultImageResolver returns the resolver used when no configuration is supplied.
func DefaultImageResolver() ImageResolver {
	return ImageResolver{
		Placeholder: DefaultPlaceholderURL,
		ProxyBase:   DefaultImageProxy,
		Width:       defaultThumbSize,
		Height:      defaultThumbSize,
		Fit:         defaultThumbFit,
	}
}

// PlaceholderURL returns the configured placeholder or the default one.
func (r ImageResolver) PlaceholderURL() string {
	if p := strings.TrimSpace(r.Placeholder); p != "" {
		return p
	}
	return DefaultPlaceholderURL
}

// Resolve returns a proxied thumbnail URL for raw, or the placeholder when raw is not an
// absolute http(s) URL once stray quotes and brackets are removed. It never fails.
func (r ImageResolver) Resolve(raw string) string {
	cleaned := CleanImageURL(raw)
	if cleaned == "" {
		return r.PlaceholderURL()
	}
	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		return r.PlaceholderURL()
	}
	return r.proxyURL(cleaned)
}

// ResolveFirst resolves the first image of a product.
func (r ImageResolver) ResolveFirst(images []string) string {
	if len(images) == 0 {
		return r.PlaceholderURL()
	}
	return r.Resolve(images[0])
}

// CleanImageURL trims whitespace and the characters [ ] " ' from both ends of raw.
func CleanImageURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, imageTrimSet)
	return strings.TrimSpace(cleaned)
}

func (r ImageResolver) proxyURL(source string) string {
	base := strings.TrimSpace(r.ProxyBase)
	if base == "" {
		base = DefaultImageProxy
	}
	width := r.Width
	if width <= 0 {
		width = defaultThumbSize
	}
	height := r.Height
	if height <= 0 {
		height = defaultThumbSize
	}
	fit := strings.TrimSpace(r.Fit)
	if fit == "" {
		fit = defaultThumbFit
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(sep)
	b.WriteString("url=")
	b.WriteString(url.QueryEscape(source))
	b.WriteString("&w=")
	b.WriteString(strconv.Itoa(width))
	b.WriteString("&h=")
	b.WriteString(strconv.Itoa(height))
	b.WriteString("&fit=")
	b.WriteString(url.QueryEscape(fit))
	return b.String()
}
