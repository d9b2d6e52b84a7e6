// Package controllers holds the HTTP handlers for the storefront.
package controllers

import (
	"encoding/json"
	"net/http"
)

func decodeJSON(r *http.Request, dest interface{}) error {
	return json.NewDecoder(r.Body).Decode(dest)
}
