package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/api/responses"
	"github.com/dcastano/warehouse-backend/api/validators"
	"github.com/dcastano/warehouse-backend/internal/problems"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/dcastano/warehouse-backend/pkg/logger"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
)

type problemCreateRequest struct {
	Type             string     `json:"type" validate:"required"`
	Priority         string     `json:"priority,omitempty"`
	ReferenceType    string     `json:"reference_type" validate:"required"`
	ReferenceID      uuid.UUID  `json:"reference_id" validate:"required"`
	ProductID        *uuid.UUID `json:"product_id,omitempty"`
	ExpectedQuantity int        `json:"expected_quantity,omitempty"`
	ActualQuantity   int        `json:"actual_quantity,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

// ProblemCreate opens a ticket by hand. Short pick tickets come from the
// picking flow instead.
func ProblemCreate(svc problems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, userID, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req problemCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.Create(r.Context(), problems.CreateInput{
			WarehouseID:      warehouseID,
			Type:             enums.ProblemType(req.Type),
			Priority:         enums.ProblemPriority(req.Priority),
			ReferenceType:    req.ReferenceType,
			ReferenceID:      req.ReferenceID,
			ProductID:        req.ProductID,
			ExpectedQuantity: req.ExpectedQuantity,
			ActualQuantity:   req.ActualQuantity,
			Notes:            req.Notes,
			ReportedBy:       userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}

// ProblemList returns paginated tickets for the active warehouse.
func ProblemList(svc problems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, _, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Limit = limit

		var filters problems.Filters
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseProblemStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			problemType := enums.ProblemType(raw)
			if !problemType.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid type filter"))
				return
			}
			filters.Type = &problemType
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("priority")); raw != "" {
			priority := enums.ProblemPriority(raw)
			if !priority.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority filter"))
				return
			}
			filters.Priority = &priority
		}

		list, err := svc.List(r.Context(), warehouseID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProblemDetail returns one ticket.
func ProblemDetail(svc problems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := validators.ParsePathUUID(chi.URLParam(r, "ticketId"), "ticketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.Get(r.Context(), ticketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}

type problemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ProblemUpdateStatus moves a ticket through its lifecycle.
func ProblemUpdateStatus(svc problems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, userID, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticketID, err := validators.ParsePathUUID(chi.URLParam(r, "ticketId"), "ticketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req problemStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseProblemStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		ticket, err := svc.UpdateStatus(r.Context(), problems.UpdateStatusInput{
			TicketID: ticketID,
			Status:   status,
			ActorID:  userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}
