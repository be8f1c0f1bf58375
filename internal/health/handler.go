package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response is the body served by Handler.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Handler serves the local health endpoint: 200 with {"status":"ok","timestamp":...}.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Response{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
}
