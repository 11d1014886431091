package handler

import (
	"net/http"
)

type healthResponse struct {
	Status  string `json:"status"`
	Running bool   `json:"running"`
	Aspects int    `json:"aspects"`
	Style   string `json:"style"`
}

func Health(runner Runner, source ReviewSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Running: runner.Status().Running,
			Aspects: source.Taxonomy().Len(),
			Style:   source.Style(),
		})
	}
}
