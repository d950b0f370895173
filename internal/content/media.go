package content

import "regexp"

// The backend delivers event galleries as a rich-text blob; the media lists
// are recovered by scanning for img/video src attributes in document order.
// Duplicates are kept and tags without a src are skipped.
var (
	imgSrcPattern   = regexp.MustCompile(`<img[^>]+src=['"]([^'">]+)['"]`)
	videoSrcPattern = regexp.MustCompile(`<video[^>]+src=['"]([^'">]+)['"]`)
)

// ExtractMedia returns the image and video URLs found in the HTML, each in
// document order.
func ExtractMedia(html string) (images, videos []string) {
	for _, m := range imgSrcPattern.FindAllStringSubmatch(html, -1) {
		images = append(images, m[1])
	}
	for _, m := range videoSrcPattern.FindAllStringSubmatch(html, -1) {
		videos = append(videos, m[1])
	}
	return images, videos
}

// FirstImage returns the first image URL in the HTML, or "" when none exists.
// Used for event cover images.
func FirstImage(html string) string {
	if m := imgSrcPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}
