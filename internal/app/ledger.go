package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"giftlist/internal/config"
	"giftlist/internal/models"
	"giftlist/internal/pkg/metrics"
	"giftlist/internal/pkg/security"

	"github.com/google/uuid"
)

const recoveryTokenTTL = 30 * time.Minute

// recoveryDetail is returned for every recovery request, match or not, so
// the endpoint cannot be used to probe which emails are known.
const recoveryDetail = "If the email matches a reservation on this wishlist, a recovery link has been sent."

// actingIdentity resolves the ledger identity for a mutating request. A
// request with no credentials gets a freshly minted guest token, returned
// to the caller exactly once.
func actingIdentity(identity models.Identity) (models.Identity, string) {
	if !identity.IsZero() {
		return identity, ""
	}
	token := security.NewGuestToken()
	return models.GuestIdentity(token), token
}

// ProcessReserve places a reservation on an item for the acting identity,
// minting a guest token when the request carried no credentials.
func (app *App) ProcessReserve(ctx context.Context, itemID uuid.UUID, identity models.Identity, req models.ReserveRequest) (*models.ReserveResponse, error) {
	identity, minted := actingIdentity(identity)

	reservation, slug, err := app.db.ReserveItem(ctx, itemID, identity, req.GuestName)
	metrics.ObserveMutation("reserve", err)
	if err != nil {
		return nil, err
	}

	app.publish(slug, models.EventItemReserved, itemID)

	return &models.ReserveResponse{
		ID:         reservation.ID.String(),
		ItemID:     itemID.String(),
		GuestName:  reservation.GuestName,
		GuestToken: minted,
		IsMine:     true,
		CreatedAt:  reservation.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ProcessCancelReservation releases the caller's reservation on an item.
func (app *App) ProcessCancelReservation(ctx context.Context, itemID uuid.UUID, identity models.Identity) error {
	slug, err := app.db.CancelReservation(ctx, itemID, identity)
	metrics.ObserveMutation("cancel_reservation", err)
	if err != nil {
		return err
	}

	app.publish(slug, models.EventItemUnreserved, itemID)
	return nil
}

// ProcessContribute records a partial pledge toward an item's price,
// minting a guest token when the request carried no credentials.
func (app *App) ProcessContribute(ctx context.Context, itemID uuid.UUID, identity models.Identity, req models.ContributeRequest) (*models.ContributeResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	identity, minted := actingIdentity(identity)

	contribution, slug, err := app.db.Contribute(ctx, itemID, identity, req.GuestName, req.Amount)
	metrics.ObserveMutation("contribute", err)
	if err != nil {
		return nil, err
	}

	app.publish(slug, models.EventContributionAdded, itemID)

	return &models.ContributeResponse{
		ID:         contribution.ID.String(),
		ItemID:     itemID.String(),
		GuestName:  contribution.GuestName,
		Amount:     contribution.Amount,
		GuestToken: minted,
		IsMine:     true,
		CreatedAt:  contribution.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ProcessCancelContribution withdraws the caller's contribution.
func (app *App) ProcessCancelContribution(ctx context.Context, contributionID uuid.UUID, identity models.Identity) error {
	itemID, slug, err := app.db.CancelContribution(ctx, contributionID, identity)
	metrics.ObserveMutation("cancel_contribution", err)
	if err != nil {
		return err
	}

	app.publish(slug, models.EventContributionRemoved, itemID)
	return nil
}

// ProcessSetReservationEmail attaches a recovery email to the caller's
// reservation.
func (app *App) ProcessSetReservationEmail(ctx context.Context, reservationID uuid.UUID, identity models.Identity, email string) error {
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	return app.db.SetReservationEmail(ctx, reservationID, identity, email)
}

// ProcessSetContributionEmail attaches a recovery email to the caller's
// contribution.
func (app *App) ProcessSetContributionEmail(ctx context.Context, contributionID uuid.UUID, identity models.Identity, email string) error {
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	return app.db.SetContributionEmail(ctx, contributionID, identity, email)
}

// ProcessRecover starts guest identity recovery. The response is the same
// whether or not the email matched anything; on a match a single-use token
// is minted and either returned directly (dev mode) or emailed.
func (app *App) ProcessRecover(ctx context.Context, req models.RecoverRequest) (*models.RecoverResponse, error) {
	response := &models.RecoverResponse{Detail: recoveryDetail}

	if !validEmail(req.Email) || req.WishlistSlug == "" {
		return response, nil
	}

	wishlist, err := app.db.GetWishlistBySlug(ctx, req.WishlistSlug)
	if errors.Is(err, models.ErrNotFound) {
		return response, nil
	}
	if err != nil {
		return nil, err
	}
	if wishlist.IsDeleted {
		return response, nil
	}

	guestToken, err := app.db.FindGuestToken(ctx, wishlist.ID, req.Email)
	if errors.Is(err, models.ErrNotFound) {
		return response, nil
	}
	if err != nil {
		return nil, err
	}

	token := security.NewRecoveryToken()
	expiresAt := time.Now().Add(recoveryTokenTTL)
	if err := app.db.CreateRecoveryToken(ctx, token, guestToken, wishlist.ID, expiresAt); err != nil {
		return nil, err
	}

	if config.DevMode {
		response.RecoveryToken = token
		return response, nil
	}

	recoveryURL := config.BaseURL + "/recover?token=" + token
	go func() {
		if err := app.mail.SendRecovery(req.Email, wishlist.Title, recoveryURL); err != nil {
			app.log.Sugar().Errorf("Failed to send recovery email: %s", err)
		}
	}()

	return response, nil
}

// ProcessVerify exchanges a recovery token for the guest token it
// protects. Tokens are single-use; a second exchange is invalid.
func (app *App) ProcessVerify(ctx context.Context, req models.VerifyRequest) (*models.VerifyResponse, error) {
	if req.Token == "" {
		return nil, models.ErrInvalidToken
	}

	guestToken, err := app.db.ConsumeRecoveryToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	return &models.VerifyResponse{GuestToken: guestToken}, nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}
