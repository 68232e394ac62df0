package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MajorLift/metamask-core/errors"
	"github.com/MajorLift/metamask-core/jobs"
	"github.com/MajorLift/metamask-core/transactions"
)

// Transactions is a HTTP server for transaction history.
// It provides list and sync APIs.
type Transactions struct {
	service *transactions.Service
}

func NewTransactions(service *transactions.Service) *Transactions {
	return &Transactions{service}
}

func (s *Transactions) List() http.Handler {
	return http.HandlerFunc(s.ListFunc)
}

func (s *Transactions) Sync() http.Handler {
	return http.HandlerFunc(s.SyncFunc)
}

// List returns stored transactions for an address, newest first.
func (s *Transactions) ListFunc(rw http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.FormValue("limit"))
	if err != nil {
		limit = 0
	}

	offset, err := strconv.Atoi(r.FormValue("offset"))
	if err != nil {
		offset = 0
	}

	vars := mux.Vars(r)

	res, err := s.service.List(vars["address"], limit, offset)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Sync queues a history sync job for an address.
// It returns a Job JSON representation.
func (s *Transactions) SyncFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	job, err := s.service.SyncAsync(vars["address"])
	if err != nil {
		if err == jobs.ErrQueueFull {
			handleError(rw, r, &errors.RequestError{
				StatusCode: http.StatusServiceUnavailable,
				Err:        err,
			})
			return
		}
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, job)
}
