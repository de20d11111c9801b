// Package htmx reads the request headers htmx sends.
package htmx

import (
	"net/http"
	"strings"
)

const (
	HeaderRequest = "HX-Request"
	HeaderBoosted = "HX-Boosted"
	HeaderTarget  = "HX-Target"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(HeaderRequest), "true")
}

// IsBoosted reports an hx-boost navigation. Those swap the whole body and
// expect a full page.
func IsBoosted(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(HeaderBoosted), "true")
}

// WantsFragment reports whether r swaps only part of the page.
func WantsFragment(r *http.Request) bool {
	return IsRequest(r) && !IsBoosted(r)
}

// Target is the id of the element being swapped, empty when htmx sent none.
func Target(r *http.Request) string {
	return strings.TrimPrefix(strings.TrimSpace(r.Header.Get(HeaderTarget)), "#")
}
