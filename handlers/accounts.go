package handlers

import (
	"net/http"

	"github.com/MajorLift/metamask-core/accounts"
)

// Accounts is a HTTP server for account management.
// It provides list, details, rename, select, update and backup APIs.
// It uses an account service to interface with data.
type Accounts struct {
	service *accounts.Service
}

// RenameRequest represents a JSON payload for a HTTP request
type RenameRequest struct {
	Name string `json:"name"`
}

// SelectRequest represents a JSON payload for a HTTP request
type SelectRequest struct {
	ID string `json:"id"`
}

// NewAccounts initiates a new accounts server.
func NewAccounts(service *accounts.Service) *Accounts {
	return &Accounts{service}
}

func (s *Accounts) List() http.Handler {
	return http.HandlerFunc(s.ListFunc)
}

func (s *Accounts) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}

func (s *Accounts) DetailsByAddress() http.Handler {
	return http.HandlerFunc(s.DetailsByAddressFunc)
}

func (s *Accounts) Selected() http.Handler {
	return http.HandlerFunc(s.SelectedFunc)
}

func (s *Accounts) Select() http.Handler {
	return http.HandlerFunc(s.SelectFunc)
}

func (s *Accounts) Rename() http.Handler {
	return http.HandlerFunc(s.RenameFunc)
}

func (s *Accounts) Update() http.Handler {
	return http.HandlerFunc(s.UpdateFunc)
}

func (s *Accounts) Backup() http.Handler {
	return http.HandlerFunc(s.BackupFunc)
}
