// Package qr builds QR image URLs for public store pages.
package qr

import (
	"fmt"
	"net/url"
)

const (
	serviceBase = "https://api.qrserver.com/v1/create-qr-code/"
	imageSize   = "200x200"
)

// ImageURL returns a QR code image URL encoding the provided target URL.
func ImageURL(target string) string {
	if target == "" {
		return ""
	}
	return fmt.Sprintf("%s?size=%s&data=%s", serviceBase, imageSize, url.QueryEscape(target))
}
