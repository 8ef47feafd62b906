package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/api/middleware"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
)

// requestScope resolves the actor and active warehouse every warehouse-scoped
// handler needs.
func requestScope(r *http.Request) (warehouseID, userID uuid.UUID, err error) {
	rawWarehouse := middleware.WarehouseIDFromContext(r.Context())
	if rawWarehouse == "" {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "no active warehouse")
	}
	warehouseID, parseErr := uuid.Parse(rawWarehouse)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid warehouse id")
	}

	rawUser := middleware.UserIDFromContext(r.Context())
	if rawUser == "" {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	userID, parseErr = uuid.Parse(rawUser)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid user id")
	}
	return warehouseID, userID, nil
}
