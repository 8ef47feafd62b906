package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/api/responses"
	"github.com/dcastano/warehouse-backend/api/validators"
	"github.com/dcastano/warehouse-backend/internal/inventory"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/dcastano/warehouse-backend/pkg/logger"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
)

type receiveRequest struct {
	ProductID   uuid.UUID  `json:"product_id" validate:"required"`
	LocationID  uuid.UUID  `json:"location_id" validate:"required"`
	LotNumber   string     `json:"lot_number,omitempty"`
	Quantity    int        `json:"quantity" validate:"required,min=1"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// InventoryReceive books inbound quantity into a location.
func InventoryReceive(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, userID, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req receiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Receive(r.Context(), inventory.ReceiveInput{
			WarehouseID: warehouseID,
			ProductID:   req.ProductID,
			LocationID:  req.LocationID,
			LotNumber:   req.LotNumber,
			Quantity:    req.Quantity,
			ActorID:     userID,
			ReferenceID: req.ReferenceID,
			Notes:       req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

type moveRequest struct {
	ProductID      uuid.UUID  `json:"product_id" validate:"required"`
	FromLocationID uuid.UUID  `json:"from_location_id" validate:"required"`
	ToLocationID   uuid.UUID  `json:"to_location_id" validate:"required"`
	LotNumber      string     `json:"lot_number,omitempty"`
	Quantity       int        `json:"quantity" validate:"required,min=1"`
	ReferenceID    *uuid.UUID `json:"reference_id,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// InventoryMove transfers quantity between two locations atomically.
func InventoryMove(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, userID, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req moveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.Move(r.Context(), inventory.MoveInput{
			WarehouseID:    warehouseID,
			ProductID:      req.ProductID,
			FromLocationID: req.FromLocationID,
			ToLocationID:   req.ToLocationID,
			LotNumber:      req.LotNumber,
			Quantity:       req.Quantity,
			ActorID:        userID,
			ReferenceID:    req.ReferenceID,
			Notes:          req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "moved"})
	}
}

type adjustRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	LocationID uuid.UUID `json:"location_id" validate:"required"`
	LotNumber  string    `json:"lot_number,omitempty"`
	Delta      int       `json:"delta" validate:"required"`
	Reason     string    `json:"reason" validate:"required"`
}

// InventoryAdjust corrects a ledger row by a signed delta.
func InventoryAdjust(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, userID, err := requestScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req adjustRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.Adjust(r.Context(), inventory.AdjustInput{
			WarehouseID: warehouseID,
			ProductID:   req.ProductID,
			LocationID:  req.LocationID,
			LotNumber:   req.LotNumber,
			Delta:       req.Delta,
			Reason:      req.Reason,
			ActorID:     userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "adjusted"})
	}
}

// InventoryList returns paginated ledger rows for the active warehouse.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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

		var filters inventory.StockFilters
		if filters.ProductID, err = validators.ParseQueryUUID(r, "productId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.LocationID, err = validators.ParseQueryUUID(r, "locationId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseStockStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("excludeZero")); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid excludeZero value"))
				return
			}
			filters.ExcludeZero = value
		}

		list, err := svc.ListStock(r.Context(), warehouseID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
