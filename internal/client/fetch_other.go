//go:build !(js && wasm)

package client

import "net/http"

func markCredentialed(*http.Request) {}
