package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/padel-tournament/internal/api/apierr"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return NewInvalidRequestError("invalid request body")
	}
	return nil
}

// intVar parses a positive integer path variable
func intVar(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || v <= 0 {
		return 0, NewInvalidRequestError(name + " must be a positive integer")
	}
	return v, nil
}
