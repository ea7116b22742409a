//go:build js && wasm

package client

import "net/http"

// In the browser the page's cookie store applies, so a credentialed request
// asks fetch to include cookies instead of attaching them by hand.
func markCredentialed(req *http.Request) {
	req.Header.Set("js.fetch:credentials", "include")
}
