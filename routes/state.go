package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/victorjacobs/go-eplucon/bridge"
)

type stateResponse struct {
	Devices       []deviceState `json:"devices"`
	LastRefreshed time.Time     `json:"last_refreshed"`
	LastError     string        `json:"last_error,omitempty"`
}

type deviceState struct {
	Id     int                    `json:"id"`
	Name   string                 `json:"name"`
	Type   string                 `json:"type"`
	Values map[string]interface{} `json:"values"`
}

// State serves the last refresh cycle as JSON, one entry per tracked device
// with every field the sensor table derives for it.
func State(b *bridge.Bridge) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		snapshots, lastRefreshed, lastErr := b.Status()

		resp := stateResponse{
			Devices:       make([]deviceState, 0, len(snapshots)),
			LastRefreshed: lastRefreshed,
		}

		if lastErr != nil {
			resp.LastError = lastErr.Error()
		}

		for _, snapshot := range snapshots {
			resp.Devices = append(resp.Devices, deviceState{
				Id:     snapshot.Id,
				Name:   snapshot.Name,
				Type:   snapshot.Type,
				Values: bridge.Values(snapshot),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if marshaled, err := json.Marshal(resp); err != nil {
			log.Error().Err(err).Msg("Error marshaling state response")
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.Write(marshaled)
		}
	}
}
