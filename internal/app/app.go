// Package app provides the core business logic for the gift registry.
// It orchestrates the reservation and contribution ledgers, builds the
// owner and public read models, manages wishlist and item lifecycles, and
// handles guest identity recovery. The package integrates with the storage
// layer for persistence, publishes invalidation events through the
// realtime hub, and uses the auth package for token generation.
package app

import (
	"context"
	"errors"
	"time"

	"giftlist/internal/models"
	"giftlist/internal/pkg/auth"
	"giftlist/internal/pkg/logger"
	"giftlist/internal/pkg/mailer"
	"giftlist/internal/realtime"
	"giftlist/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Predefined errors for invalid request payloads and account limits.
var (
	// ErrMissingEmailOrPassword indicates that either the email or password is not provided.
	ErrMissingEmailOrPassword = errors.New("app: missing email or password")
	// ErrInvalidCredentials indicates a failed login against an existing account.
	ErrInvalidCredentials = errors.New("app: invalid credentials")
	// ErrMissingTitle indicates a wishlist or item create request without a title.
	ErrMissingTitle = errors.New("app: missing title")
	// ErrInvalidAmount indicates a non-positive contribution amount.
	ErrInvalidAmount = errors.New("app: amount must be positive")
	// ErrInvalidEmail indicates a malformed recovery email address.
	ErrInvalidEmail = errors.New("app: invalid email")
	// ErrInvalidEventDate indicates an event date that is not YYYY-MM-DD.
	ErrInvalidEventDate = errors.New("app: event date must be YYYY-MM-DD")
	// ErrWishlistLimit indicates the per-user wishlist cap was reached.
	ErrWishlistLimit = errors.New("app: wishlist limit reached")
	// ErrItemLimit indicates the per-wishlist item cap was reached.
	ErrItemLimit = errors.New("app: item limit reached")
	// ErrEmptyReorder indicates a reorder request without items.
	ErrEmptyReorder = errors.New("app: reorder requires at least one item")
	// ErrDuplicateReorderID indicates the same item listed twice in a reorder.
	ErrDuplicateReorderID = errors.New("app: duplicate item id in reorder")
)

// Per-account limits carried over from the hosted deployment.
const (
	maxWishlistsPerUser = 20
	maxItemsPerWishlist = 100
)

// App encapsulates the application logic and dependencies required to
// process requests. It interacts with the storage layer, broadcasts
// invalidation events through the hub, and uses a logger for error and
// activity logging.
type App struct {
	db   storage.Storage // Database storage layer for persistent data operations.
	hub  *realtime.Hub   // Fan-out hub for wishlist invalidation events.
	mail *mailer.Mailer  // Outgoing mail for guest recovery links.
	log  *logger.Logger  // Logger for logging application events and errors.
}

// NewApp creates and returns a new instance of App with the provided
// dependencies.
func NewApp(db storage.Storage, hub *realtime.Hub, mail *mailer.Mailer, log *logger.Logger) *App {
	return &App{db: db, hub: hub, mail: mail, log: log}
}

// ProcessAuth handles user authentication by verifying credentials and
// generating a token. If no account exists for the email, one is created.
func (app *App) ProcessAuth(ctx context.Context, req models.AuthRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrMissingEmailOrPassword
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := app.db.CheckUser(ctx, user)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if user.ID == uuid.Nil {
		user, err = app.db.CreateUser(ctx, user)
		if err != nil {
			return "", err
		}
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return "", err
	}

	return token, nil
}

// publish broadcasts an invalidation event to the wishlist topic without
// blocking the mutation path.
func (app *App) publish(slug, eventType string, itemID uuid.UUID) {
	event := models.Event{Type: eventType}
	if itemID != uuid.Nil {
		event.ItemID = itemID.String()
	}
	app.hub.Publish(slug, event)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func parseEventDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, ErrInvalidEventDate
	}
	return &t, nil
}
