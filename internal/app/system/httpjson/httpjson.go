// Package httpjson holds the request/response JSON helpers shared by every
// API handler.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// maxBodyBytes caps request bodies; none of the API's documents come close.
const maxBodyBytes = 1 << 20

// Decode parses the request body into v, rejecting oversized bodies and
// trailing garbage. Unknown fields are ignored, as elsewhere in the API.
func Decode(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	// A second token means the body held more than one JSON value.
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
