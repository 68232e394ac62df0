package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/MajorLift/metamask-core/system"
)

// System is a HTTP server for system settings management.
type System struct {
	service *system.Service
}

func NewSystem(service *system.Service) *System {
	return &System{service}
}

func (s *System) GetSettings() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		res, err := s.service.GetSettings()
		if err != nil {
			handleError(rw, r, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, res.ToJSON())
	})
}

func (s *System) SetSettings() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		settings, err := s.service.GetSettings()
		if err != nil {
			handleError(rw, r, err)
			return
		}

		// Decode JSON over existing settings so fields missing from the
		// request body stay unchanged.
		settingsJSON := settings.ToJSON()
		if err := json.NewDecoder(r.Body).Decode(&settingsJSON); err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		if !settings.MaintenanceMode && settingsJSON.MaintenanceMode {
			log.Debug("Maintenance mode enabled")
		} else if settings.MaintenanceMode && !settingsJSON.MaintenanceMode {
			log.Debug("Maintenance mode disabled")
		}

		settings.FromJSON(settingsJSON)

		if err := s.service.SaveSettings(settings); err != nil {
			handleError(rw, r, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, settings.ToJSON())
	})
}
