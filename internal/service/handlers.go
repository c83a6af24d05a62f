// Package service contains HTTP handler implementations for the gift
// registry API endpoints. It orchestrates request parsing, calls the
// underlying business logic in the app package, handles errors (including
// database-specific errors), and writes appropriate HTTP responses.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"giftlist/internal/app"
	"giftlist/internal/models"
	"giftlist/internal/pkg/auth"
	"giftlist/internal/pkg/logger"
	"giftlist/internal/realtime"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const requestTimeout = 10 * time.Second

// handlers aggregates dependencies needed by HTTP handlers, including the
// application business logic, the realtime hub and logger.
type handlers struct {
	app *app.App
	hub *realtime.Hub
	log *logger.Logger
}

// newHandlers initializes a new handlers instance with the provided
// dependencies.
func newHandlers(app *app.App, hub *realtime.Hub, l *logger.Logger) *handlers {
	return &handlers{app: app, hub: hub, log: l}
}

// authHandler handles user authentication requests. It reads the request
// body, unmarshals it into an AuthRequest, invokes the authentication
// process, and returns a JSON response with a token.
func (handlers *handlers) authHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var authRequest models.AuthRequest
	var authResponse models.AuthResponse

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &authRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var pgError *pgconn.PgError
	authResponse.Token, err = handlers.app.ProcessAuth(ctx, authRequest)
	if err != nil {
		if ok := errors.As(err, &pgError); ok && pgError.Code == pgerrcode.UniqueViolation {
			writeErrorResponse(res, "account with provided email already exists", http.StatusUnauthorized)
			return
		}

		if errors.Is(err, app.ErrMissingEmailOrPassword) {
			writeErrorResponse(res, "missing email or password", http.StatusBadRequest)
			return
		}

		if errors.Is(err, app.ErrInvalidCredentials) {
			writeErrorResponse(res, "incorrect password", http.StatusUnauthorized)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, authResponse, http.StatusOK)
}

// publicWishlistHandler serves the guest-facing wishlist view for anyone
// holding the slug.
func (handlers *handlers) publicWishlistHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	identity := auth.IdentityFromContext(req.Context())
	slug := chi.URLParam(req, "slug")
	page, perPage := pageParams(req)

	wishlist, err := handlers.app.ProcessPublicWishlist(ctx, identity, slug, page, perPage)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, wishlist, http.StatusOK)
}

// reserveHandler places a reservation on an item for the acting identity.
// An empty body is allowed; guest_name is optional.
func (handlers *handlers) reserveHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	itemID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	var reserveRequest models.ReserveRequest
	if !readOptionalBody(res, req, &reserveRequest) {
		return
	}

	identity := auth.IdentityFromContext(req.Context())
	reservation, err := handlers.app.ProcessReserve(ctx, itemID, identity, reserveRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, reservation, http.StatusCreated)
}

// cancelReservationHandler releases the caller's reservation on an item.
func (handlers *handlers) cancelReservationHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	itemID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	identity := auth.IdentityFromContext(req.Context())
	if err := handlers.app.ProcessCancelReservation(ctx, itemID, identity); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// contributeHandler records a partial pledge toward an item's price.
func (handlers *handlers) contributeHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	itemID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	var contributeRequest models.ContributeRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &contributeRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	identity := auth.IdentityFromContext(req.Context())
	contribution, err := handlers.app.ProcessContribute(ctx, itemID, identity, contributeRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, contribution, http.StatusCreated)
}

// cancelContributionHandler withdraws the caller's contribution.
func (handlers *handlers) cancelContributionHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	contributionID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	identity := auth.IdentityFromContext(req.Context())
	if err := handlers.app.ProcessCancelContribution(ctx, contributionID, identity); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// reservationEmailHandler attaches a recovery email to the caller's
// reservation.
func (handlers *handlers) reservationEmailHandler(res http.ResponseWriter, req *http.Request) {
	handlers.ledgerEmailHandler(res, req, handlers.app.ProcessSetReservationEmail)
}

// contributionEmailHandler attaches a recovery email to the caller's
// contribution.
func (handlers *handlers) contributionEmailHandler(res http.ResponseWriter, req *http.Request) {
	handlers.ledgerEmailHandler(res, req, handlers.app.ProcessSetContributionEmail)
}

func (handlers *handlers) ledgerEmailHandler(res http.ResponseWriter, req *http.Request,
	process func(context.Context, uuid.UUID, models.Identity, string) error) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	id, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	var emailRequest models.UpdateEmailRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &emailRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	identity := auth.IdentityFromContext(req.Context())
	if err := process(ctx, id, identity, emailRequest.Email); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// recoverHandler starts guest identity recovery by email. The response
// never reveals whether the email matched.
func (handlers *handlers) recoverHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var recoverRequest models.RecoverRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &recoverRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := handlers.app.ProcessRecover(ctx, recoverRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, response, http.StatusOK)
}

// verifyHandler exchanges a single-use recovery token for a guest token.
func (handlers *handlers) verifyHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var verifyRequest models.VerifyRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &verifyRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := handlers.app.ProcessVerify(ctx, verifyRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, response, http.StatusOK)
}

// writeAppError maps the application error taxonomy onto HTTP statuses.
func (handlers *handlers) writeAppError(res http.ResponseWriter, err error) {
	var exceedsError *models.ExceedsRemainingError
	var pgError *pgconn.PgError

	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		writeErrorResponse(res, "not found", http.StatusNotFound)
	case errors.Is(err, models.ErrGone):
		writeErrorResponse(res, "wishlist deleted", http.StatusGone)
	case errors.As(err, &exceedsError):
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(http.StatusConflict)
		json.NewEncoder(res).Encode(models.ErrorResponse{
			Errors:    exceedsError.Error(),
			Remaining: &exceedsError.Remaining,
		})
	case errors.Is(err, models.ErrConflict):
		writeErrorResponse(res, "conflict", http.StatusConflict)
	case errors.Is(err, models.ErrForbidden):
		writeErrorResponse(res, "forbidden", http.StatusForbidden)
	case errors.Is(err, models.ErrNotFundable):
		writeErrorResponse(res, "item has no price", http.StatusBadRequest)
	case errors.Is(err, models.ErrExpiredToken):
		writeErrorResponse(res, "recovery token expired", http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidToken):
		writeErrorResponse(res, "recovery token invalid", http.StatusBadRequest)
	case errors.Is(err, app.ErrWishlistLimit), errors.Is(err, app.ErrItemLimit):
		writeErrorResponse(res, err.Error(), http.StatusConflict)
	case errors.Is(err, app.ErrMissingTitle), errors.Is(err, app.ErrInvalidAmount),
		errors.Is(err, app.ErrInvalidEmail), errors.Is(err, app.ErrInvalidEventDate),
		errors.Is(err, app.ErrEmptyReorder), errors.Is(err, app.ErrDuplicateReorderID):
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
	case errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation:
		writeErrorResponse(res, "conflict", http.StatusConflict)
	default:
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
	}
}

// parseIDParam extracts and validates a UUID path parameter, writing a 404
// when it is malformed so unparseable ids behave like unknown ones.
func parseIDParam(res http.ResponseWriter, req *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(req, name))
	if err != nil {
		writeErrorResponse(res, "not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// readOptionalBody unmarshals a request body into target when one is
// present. An empty body leaves the target zero-valued.
func readOptionalBody(res http.ResponseWriter, req *http.Request, target any) bool {
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return false
	}
	if len(requestBody) == 0 {
		return true
	}
	if err = json.Unmarshal(requestBody, target); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func pageParams(req *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	perPage, _ = strconv.Atoi(req.URL.Query().Get("per_page"))
	return page, perPage
}

func writeJSONResponse(res http.ResponseWriter, payload any, statusCode int) {
	result, err := json.Marshal(payload)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	res.Write(result)
}

func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Errors: errorInfo})
}
