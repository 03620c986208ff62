package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var listingPathRe = regexp.MustCompile(`/items/(\d+)`)

// IsListingPage reports whether the URL points at an item page (/items/<id>).
func IsListingPage(url string) bool {
	return listingPathRe.MatchString(url)
}

// IsCreatePage reports whether the URL points at the listing-creation form.
func IsCreatePage(url string) bool {
	return strings.Contains(url, "/items/new") || strings.Contains(url, "/upload")
}

// ItemIDFromURL pulls the numeric item id out of a listing URL.
func ItemIDFromURL(url string) (int64, error) {
	m := listingPathRe.FindStringSubmatch(url)
	if m == nil {
		return 0, fmt.Errorf("no item id in url: %s", url)
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse item id %q: %w", m[1], err)
	}
	return id, nil
}
