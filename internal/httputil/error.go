package httputil

import (
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	clientError(w, http.StatusBadRequest, "bad request", msg, err)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	clientError(w, http.StatusNotFound, "not found", msg, err)
}

// Conflict is for requests that are valid but not possible in the tournament's current state
func Conflict(w http.ResponseWriter, msg string, err error) {
	clientError(w, http.StatusConflict, "conflict", msg, err)
}

func clientError(w http.ResponseWriter, status int, kind, msg string, err error) {
	if err != nil {
		slog.Warn(kind, "message", msg, "error", err)
	} else {
		slog.Warn(kind, "message", msg)
	}
	WriteJSON(w, status, errorBody{Error: msg})
}
