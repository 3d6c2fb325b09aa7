package httpadapter

import (
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeJSON reads exactly one JSON value with known fields only. Malformed bodies are invalid arguments.
func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("%w: request body exceeds %d bytes", core.ErrInvalidArgument, maxBytesErr.Limit)
		}

		return fmt.Errorf("%w: malformed request body: %v", core.ErrInvalidArgument, err)
	}

	if decoder.More() {
		return core.InvalidArgument("request body must contain a single JSON object")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)

	return nil
}
