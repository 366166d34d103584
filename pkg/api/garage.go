package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"castromotors/pkg/garage"
	"castromotors/pkg/httputil"
	"castromotors/pkg/otel"
)

// UserIDHeader carries the caller's identity for the garage routes.
const UserIDHeader = "X-User-ID"

const (
	msgItemRemoved    = "car removed from garage"
	msgOrderFinalized = "order finalized successfully"
)

var errMissingUser = fmt.Errorf("missing %s header", UserIDHeader)

func userID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if id == "" {
		return "", errMissingUser
	}
	return id, nil
}

// readID parses an identifier sent as the request body. It accepts a JSON
// string, bare text, or an object holding the id under field.
func readID(r *http.Request, field string) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, 4<<10))
	if err != nil {
		return "", err
	}
	raw := strings.TrimSpace(string(b))

	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		raw = s
	} else {
		var obj map[string]string
		if err := json.Unmarshal([]byte(raw), &obj); err == nil {
			raw = obj[field]
		}
	}

	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", field, err)
	}
	return id.String(), nil
}

// getGarageHandler returns the caller's open order, creating it if needed.
// @Summary Get garage
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} dealership.Order
// @Router /api/garage [get]
func (a *API) getGarageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getGarageHandler")
	defer span.End()

	uid, err := userID(r)
	if err != nil {
		httputil.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := a.garage.Garage(ctx, uid)
	if err != nil {
		a.log.Error(ctx, "get garage", "error", err)
		httputil.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.JSONResponse(w, http.StatusOK, o)
}

// addToGarageHandler adds a car to the caller's open order.
// @Summary Add to garage
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id body string true "Car ID"
// @Success 200 {object} dealership.Order
// @Router /api/garage/add-to-garage [post]
func (a *API) addToGarageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addToGarageHandler")
	defer span.End()

	uid, err := userID(r)
	if err != nil {
		httputil.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	carID, err := readID(r, "carId")
	if err != nil {
		httputil.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := a.garage.AddCar(ctx, uid, carID)
	if err != nil {
		a.log.Error(ctx, "add to garage", "error", err)
		httputil.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.JSONResponse(w, http.StatusOK, o)
}

// removeFromGarageHandler removes an order item by id, whoever owns it.
// @Summary Remove from garage
// @Accept json
// @Produce json
// @Param id body string true "Order item ID"
// @Success 200 {string} string
// @Failure 404 {object} map[string]string
// @Router /api/garage/remove-from-garage [post]
func (a *API) removeFromGarageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeFromGarageHandler")
	defer span.End()

	itemID, err := readID(r, "orderItemId")
	if err != nil {
		httputil.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.garage.RemoveItem(ctx, itemID); err != nil {
		if errors.Is(err, garage.ErrItemNotFound) {
			httputil.ErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		a.log.Error(ctx, "remove from garage", "error", err)
		httputil.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.JSONResponse(w, http.StatusOK, msgItemRemoved)
}

// checkoutHandler finalizes the caller's open order. It answers 200 even
// when there was nothing to finalize.
// @Summary Checkout
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {string} string
// @Router /api/garage/checkout [post]
func (a *API) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkoutHandler")
	defer span.End()

	uid, err := userID(r)
	if err != nil {
		httputil.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := a.garage.Checkout(ctx, uid); err != nil {
		a.log.Error(ctx, "checkout", "error", err)
		httputil.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.JSONResponse(w, http.StatusOK, msgOrderFinalized)
}
