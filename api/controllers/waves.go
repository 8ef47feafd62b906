package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/api/responses"
	"github.com/dcastano/warehouse-backend/api/validators"
	"github.com/dcastano/warehouse-backend/internal/waves"
	"github.com/dcastano/warehouse-backend/pkg/logger"
)

type commitmentCheckRequest struct {
	ShipmentIDs []uuid.UUID `json:"shipment_ids" validate:"required,min=1"`
}

// WaveCheckCommitment answers whether the listed shipments can be fulfilled
// from current stock. The answer is advisory and reserves nothing.
func WaveCheckCommitment(svc waves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, _, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req commitmentCheckRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.CheckCommitment(r.Context(), warehouseID, req.ShipmentIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

type waveCreateRequest struct {
	Reference   string      `json:"reference" validate:"required"`
	ShipmentIDs []uuid.UUID `json:"shipment_ids" validate:"required,min=1"`
	Force       bool        `json:"force,omitempty"`
}

// WaveCreate groups shipments into a new wave, gated by the commitment check.
func WaveCreate(svc waves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, userID, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req waveCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wave, err := svc.Create(r.Context(), waves.CreateInput{
			WarehouseID: warehouseID,
			Reference:   req.Reference,
			ShipmentIDs: req.ShipmentIDs,
			ActorID:     userID,
			Force:       req.Force,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, wave)
	}
}

// WaveRelease flips the wave to released and its shipments into the pick
// queue.
func WaveRelease(svc waves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, userID, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		waveID, err := validators.ParsePathUUID(chi.URLParam(r, "waveId"), "waveId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wave, err := svc.Release(r.Context(), waveID, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wave)
	}
}

// WaveDetail returns one wave.
func WaveDetail(svc waves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		waveID, err := validators.ParsePathUUID(chi.URLParam(r, "waveId"), "waveId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wave, err := svc.Get(r.Context(), waveID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wave)
	}
}

// WaveList returns the warehouse's waves, newest first.
func WaveList(svc waves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, _, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), warehouseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
