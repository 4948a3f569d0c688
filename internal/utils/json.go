package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/httpresponse"
)

// DecodeJSONRequest reads the request body into dst. An empty body leaves dst
// untouched; unknown fields are an error.
func DecodeJSONRequest(r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", httpresponse.MALFORMEDJSON_errorDesc, err)
	}
	return nil
}
