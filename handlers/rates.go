package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MajorLift/metamask-core/errors"
	"github.com/MajorLift/metamask-core/rates"
)

// Rates is a HTTP server for currency rates.
type Rates struct {
	service *rates.Service
}

func NewRates(service *rates.Service) *Rates {
	return &Rates{service}
}

func (s *Rates) List() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		handleJsonResponse(rw, http.StatusOK, s.service.LatestRates())
	})
}

func (s *Rates) Details() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		res, ok := s.service.LatestRate(vars["symbol"])
		if !ok {
			handleError(rw, r, &errors.RequestError{
				StatusCode: http.StatusNotFound,
				Err:        fmt.Errorf("no rate for symbol %q", vars["symbol"]),
			})
			return
		}

		handleJsonResponse(rw, http.StatusOK, res)
	})
}
