package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxRequestBody is the largest JSON request body DecodeJSON accepts.
const MaxRequestBody = 1 << 20

// WriteJSON writes data as a JSON response with statusCode. On a marshal
// failure the client gets a bare 500 and the error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// DecodeJSON decodes the request body into dst. Bodies above
// MaxRequestBody and trailing data after the first JSON value are errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBody))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}
