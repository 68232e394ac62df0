// Package handlers provides HTTP handlers for different services across the
// application.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/MajorLift/metamask-core/errors"
)

var InvalidBodyError = &errors.RequestError{
	StatusCode: http.StatusBadRequest,
	Err:        fmt.Errorf("invalid body"),
}

var EmptyBodyError = &errors.RequestError{
	StatusCode: http.StatusBadRequest,
	Err:        fmt.Errorf("empty body"),
}

// handleError is a helper function for unified HTTP error handling. Domain
// errors carry their own status mapping; everything else is a plain 500
// without details.
func handleError(rw http.ResponseWriter, r *http.Request, err error) {
	log.
		WithFields(log.Fields{"error": err, "path": r.URL.Path}).
		Warn("Error while handling request")

	switch {
	case errors.IsAccountNotFound(err):
		http.Error(rw, err.Error(), http.StatusNotFound)
	case errors.IsDuplicateName(err):
		http.Error(rw, err.Error(), http.StatusConflict)
	case errors.IsUnknownKeyringKind(err):
		http.Error(rw, err.Error(), http.StatusBadRequest)
	default:
		if reqErr, ok := err.(*errors.RequestError); ok {
			http.Error(rw, reqErr.Error(), reqErr.StatusCode)
			return
		}
		http.Error(rw, "Error", http.StatusInternalServerError)
	}
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Error while encoding response")
	}
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.ContentLength == 0 {
		return EmptyBodyError
	}
	return nil
}

func servePlainText(rw http.ResponseWriter, s string) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = rw.Write([]byte(s))
}
