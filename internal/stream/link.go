package stream

import "net/url"

// BuildPreviewLink assembles a shareable stream preview link from a
// manifest URL and a license URL. The drm tag is always widevine,
// matching the DRM scheme requested at playback time.
func BuildPreviewLink(previewURL, manifestURL, licenseURL string) string {
	return previewURL +
		"?format=dash" +
		"&manifest=" + url.QueryEscape(manifestURL) +
		"&drm=widevine" +
		"&license=" + url.QueryEscape(licenseURL)
}
