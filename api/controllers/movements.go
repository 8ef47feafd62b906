package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dcastano/warehouse-backend/api/responses"
	"github.com/dcastano/warehouse-backend/api/validators"
	"github.com/dcastano/warehouse-backend/internal/movements"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/dcastano/warehouse-backend/pkg/logger"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
)

// MovementList returns the movement log, newest first.
func MovementList(svc movements.Service, logg *logger.Logger) http.HandlerFunc {
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

		var filters movements.Filters
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			movementType, err := enums.ParseMovementType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type filter"))
				return
			}
			filters.Type = &movementType
		}
		if filters.ProductID, err = validators.ParseQueryUUID(r, "productId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.ReferenceID, err = validators.ParseQueryUUID(r, "referenceId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DateFrom, err = parseQueryTime(r, "from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DateTo, err = parseQueryTime(r, "to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), warehouseID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// MovementSummary aggregates the log per movement type over a window,
// defaulting to the trailing 24 hours.
func MovementSummary(svc movements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, _, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var window movements.SummaryWindow
		if from, err := parseQueryTime(r, "from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if from != nil {
			window.From = *from
		}
		if to, err := parseQueryTime(r, "to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if to != nil {
			window.To = *to
		}

		rows, err := svc.Summary(r.Context(), warehouseID, window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func parseQueryTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "timestamp must be RFC3339").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}
