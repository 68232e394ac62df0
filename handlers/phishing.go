package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MajorLift/metamask-core/phishing"
)

// Phishing is a HTTP server for phishing domain checks.
type Phishing struct {
	service *phishing.Service
}

// CheckHostnameRequest represents a JSON payload for a HTTP request
type CheckHostnameRequest struct {
	Hostname string `json:"hostname"`
}

func NewPhishing(service *phishing.Service) *Phishing {
	return &Phishing{service}
}

func (s *Phishing) Check() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		var body CheckHostnameRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		if body.Hostname == "" {
			handleError(rw, r, InvalidBodyError)
			return
		}

		handleJsonResponse(rw, http.StatusOK, s.service.CheckHostname(body.Hostname))
	})
}

func (s *Phishing) Config() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		handleJsonResponse(rw, http.StatusOK, s.service.ListConfig())
	})
}
