package httperror

import (
	"encoding/json"
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// RenderJSON writes data as a single-line JSON body with the given status.
func RenderJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Errorf("marshalling response body: %v", err)
		http.Error(w, `{"error":"An internal error occurred while processing this request."}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err = w.Write(body); err != nil {
		log.Errorf("writing response body: %v", err)
	}
}
