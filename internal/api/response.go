package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"ecofly/radar/internal/engine"
	"ecofly/radar/internal/models/dtos/responses"
)

const maxBodyBytes = 1 << 16

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := responses.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithEngineError maps a failed engine command. The engine only fails
// when it has stopped or the request was cancelled.
func respondWithEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrStopped) {
		respondWithError(w, http.StatusServiceUnavailable, "simulation is not running")
		return
	}
	respondWithError(w, http.StatusServiceUnavailable, err.Error())
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
