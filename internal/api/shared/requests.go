package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

)

// DecodeJSON decodes the request body into the given struct.
// An empty body leaves v untouched and is not an error.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
