package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MajorLift/metamask-core/accounts"
	"github.com/MajorLift/metamask-core/errors"
)

// List returns all accounts in registry order.
func (s *Accounts) ListFunc(rw http.ResponseWriter, r *http.Request) {
	handleJsonResponse(rw, http.StatusOK, s.service.ListAccounts())
}

// Details returns details regarding an account.
// It reads the id for the wanted account from URL.
func (s *Accounts) DetailsFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	res, err := s.service.GetAccountExpect(vars["id"])
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// DetailsByAddress returns the account holding the given address.
func (s *Accounts) DetailsByAddressFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	res, ok := s.service.GetAccountByAddress(vars["address"])
	if !ok {
		handleError(rw, r, &errors.AccountNotFoundError{ID: vars["address"]})
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Selected returns the currently selected account, or the onboarding
// placeholder when nothing is selected yet.
func (s *Accounts) SelectedFunc(rw http.ResponseWriter, r *http.Request) {
	res, err := s.service.GetSelectedAccount()
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Select changes the selected account.
func (s *Accounts) SelectFunc(rw http.ResponseWriter, r *http.Request) {
	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	var body SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	s.service.SetSelectedAccount(body.ID)

	res, err := s.service.GetSelectedAccount()
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Rename changes an account's display name.
func (s *Accounts) RenameFunc(rw http.ResponseWriter, r *http.Request) {
	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	var body RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	vars := mux.Vars(r)
	if err := s.service.SetAccountName(vars["id"], body.Name); err != nil {
		handleError(rw, r, err)
		return
	}

	res, err := s.service.GetAccountExpect(vars["id"])
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// Update runs a pull-based reconciliation pass against the keyring bridge
// and returns the resulting account list.
func (s *Accounts) UpdateFunc(rw http.ResponseWriter, r *http.Request) {
	if err := s.service.UpdateAccounts(r.Context()); err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, s.service.ListAccounts())
}

// Backup replaces the registry with a previously exported snapshot.
func (s *Accounts) BackupFunc(rw http.ResponseWriter, r *http.Request) {
	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	var body accounts.Backup
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	s.service.LoadBackup(&body)

	handleJsonResponse(rw, http.StatusOK, s.service.ListAccounts())
}
