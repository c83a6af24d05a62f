package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"giftlist/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// lockItemQuery serializes all ledger writers on the item row. The
	// wishlist join also rejects deleted lists in the same round trip.
	lockItemQuery = `SELECT i.price, w.owner_id, w.slug
		FROM content.items i JOIN content.wishlists w ON w.id = i.wishlist_id
		WHERE i.id = $1 AND i.is_deleted = FALSE AND w.is_deleted = FALSE
		FOR UPDATE OF i;`

	activeReservationExistsQuery = `SELECT EXISTS (SELECT 1 FROM content.reservations WHERE item_id = $1 AND cancelled_at IS NULL);`
	activeContributedSumQuery    = `SELECT COALESCE(SUM(amount), 0) FROM content.contributions WHERE item_id = $1 AND cancelled_at IS NULL;`

	insertReservationQuery  = `INSERT INTO content.reservations (id, item_id, user_id, guest_token, guest_name) VALUES ($1, $2, $3, $4, $5) RETURNING created_at;`
	insertContributionQuery = `INSERT INTO content.contributions (id, item_id, user_id, guest_token, guest_name, amount) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at;`

	activeReservationQuery = `SELECT r.id, r.user_id, r.guest_token, w.slug
		FROM content.reservations r
		JOIN content.items i ON i.id = r.item_id
		JOIN content.wishlists w ON w.id = i.wishlist_id
		WHERE r.item_id = $1 AND r.cancelled_at IS NULL AND i.is_deleted = FALSE AND w.is_deleted = FALSE;`
	cancelReservationQuery = `UPDATE content.reservations SET cancelled_at = NOW() WHERE id = $1 AND cancelled_at IS NULL;`

	activeContributionQuery = `SELECT c.item_id, c.user_id, c.guest_token, w.slug
		FROM content.contributions c
		JOIN content.items i ON i.id = c.item_id
		JOIN content.wishlists w ON w.id = i.wishlist_id
		WHERE c.id = $1 AND c.cancelled_at IS NULL AND i.is_deleted = FALSE AND w.is_deleted = FALSE;`
	cancelContributionQuery = `UPDATE content.contributions SET cancelled_at = NOW() WHERE id = $1 AND cancelled_at IS NULL;`

	reservationIdentityQuery  = `SELECT user_id, guest_token FROM content.reservations WHERE id = $1 AND cancelled_at IS NULL;`
	setReservationEmailQuery  = `UPDATE content.reservations SET guest_email = $1 WHERE id = $2;`
	contributionIdentityQuery = `SELECT user_id, guest_token FROM content.contributions WHERE id = $1 AND cancelled_at IS NULL;`
	setContributionEmailQuery = `UPDATE content.contributions SET guest_email = $1 WHERE id = $2;`

	findGuestTokenQuery = `SELECT guest_token FROM (
			SELECT r.guest_token, r.created_at FROM content.reservations r
				JOIN content.items i ON i.id = r.item_id
				WHERE i.wishlist_id = $1 AND r.guest_email = $2 AND r.guest_token IS NOT NULL AND r.cancelled_at IS NULL
			UNION ALL
			SELECT c.guest_token, c.created_at FROM content.contributions c
				JOIN content.items i ON i.id = c.item_id
				WHERE i.wishlist_id = $1 AND c.guest_email = $2 AND c.guest_token IS NOT NULL AND c.cancelled_at IS NULL
		) matches ORDER BY created_at DESC LIMIT 1;`

	insertRecoveryTokenQuery  = `INSERT INTO content.recovery_tokens (token, guest_token, wishlist_id, expires_at) VALUES ($1, $2, $3, $4);`
	consumeRecoveryTokenQuery = `UPDATE content.recovery_tokens SET used_at = NOW()
		WHERE token = $1 AND used_at IS NULL AND expires_at > NOW() RETURNING guest_token;`
	inspectRecoveryTokenQuery = `SELECT used_at IS NOT NULL, expires_at <= NOW() FROM content.recovery_tokens WHERE token = $1;`
)

// lockedItem is the state of an item row while its ledger lock is held.
type lockedItem struct {
	price   sql.NullInt64
	ownerID uuid.UUID
	slug    string
}

// lockItem acquires the per-item row lock and rejects requests by the
// wishlist owner, who must not act on their own ledger.
func (postgresql *PostgreSQL) lockItem(ctx context.Context, tx *sql.Tx, itemID uuid.UUID, identity models.Identity) (*lockedItem, error) {
	locked := &lockedItem{}
	err := tx.QueryRowContext(ctx, lockItemQuery, itemID).Scan(&locked.price, &locked.ownerID, &locked.slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query lockItemQuery: %s", err)
		return nil, err
	}
	if userID, ok := identity.UserID(); ok && userID == locked.ownerID {
		return nil, models.ErrForbidden
	}
	return locked, nil
}

func identityColumns(identity models.Identity) (uuid.NullUUID, sql.NullString) {
	if userID, ok := identity.UserID(); ok {
		return uuid.NullUUID{UUID: userID, Valid: true}, sql.NullString{}
	}
	if token, ok := identity.GuestToken(); ok {
		return uuid.NullUUID{}, sql.NullString{String: token, Valid: true}
	}
	return uuid.NullUUID{}, sql.NullString{}
}

// ReserveItem atomically claims an item for the acting identity. It fails
// with ErrConflict when another active reservation or any active
// contribution exists. The partial unique index on active reservations
// backstops the check, so a racing insert that slips past still resolves
// to exactly one winner.
func (postgresql *PostgreSQL) ReserveItem(ctx context.Context, itemID uuid.UUID, identity models.Identity, guestName string) (*models.Reservation, string, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", err
	}
	defer tx.Rollback()

	locked, err := postgresql.lockItem(ctx, tx, itemID, identity)
	if err != nil {
		return nil, "", err
	}

	var reserved bool
	if err := tx.QueryRowContext(ctx, activeReservationExistsQuery, itemID).Scan(&reserved); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query activeReservationExistsQuery: %s", err)
		return nil, "", err
	}
	if reserved {
		return nil, "", models.ErrConflict
	}

	var contributed int
	if err := tx.QueryRowContext(ctx, activeContributedSumQuery, itemID).Scan(&contributed); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query activeContributedSumQuery: %s", err)
		return nil, "", err
	}
	if contributed > 0 {
		return nil, "", models.ErrConflict
	}

	reservation := &models.Reservation{
		ID:        uuid.New(),
		ItemID:    itemID,
		Identity:  identity,
		GuestName: guestName,
	}
	userID, guestToken := identityColumns(identity)
	err = tx.QueryRowContext(ctx, insertReservationQuery,
		reservation.ID, itemID, userID, guestToken, guestName).Scan(&reservation.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, "", models.ErrConflict
		}
		postgresql.log.Sugar().Errorf("Failed to execute a query insertReservationQuery: %s", err)
		return nil, "", err
	}

	if err = tx.Commit(); err != nil {
		return nil, "", err
	}

	return reservation, locked.slug, nil
}

// CancelReservation releases the active reservation on an item. Only the
// identity that placed it may cancel; a second cancel finds no active row
// and reports NotFound.
func (postgresql *PostgreSQL) CancelReservation(ctx context.Context, itemID uuid.UUID, identity models.Identity) (string, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var (
		reservationID uuid.UUID
		userID        uuid.NullUUID
		guestToken    sql.NullString
		slug          string
	)
	err = tx.QueryRowContext(ctx, activeReservationQuery, itemID).Scan(&reservationID, &userID, &guestToken, &slug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query activeReservationQuery: %s", err)
		return "", err
	}

	if !identityFromRow(userID, guestToken).Equal(identity) {
		return "", models.ErrForbidden
	}

	if _, err := tx.ExecContext(ctx, cancelReservationQuery, reservationID); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query cancelReservationQuery: %s", err)
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}

	return slug, nil
}

// Contribute atomically records a partial pledge toward an item's price.
// The active sum is re-read under the item lock, so the funding cap holds
// under concurrency; an overshoot reports how much is still collectible.
func (postgresql *PostgreSQL) Contribute(ctx context.Context, itemID uuid.UUID, identity models.Identity, guestName string, amount int) (*models.Contribution, string, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", err
	}
	defer tx.Rollback()

	locked, err := postgresql.lockItem(ctx, tx, itemID, identity)
	if err != nil {
		return nil, "", err
	}
	if !locked.price.Valid {
		return nil, "", models.ErrNotFundable
	}

	var reserved bool
	if err := tx.QueryRowContext(ctx, activeReservationExistsQuery, itemID).Scan(&reserved); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query activeReservationExistsQuery: %s", err)
		return nil, "", err
	}
	if reserved {
		return nil, "", models.ErrConflict
	}

	var contributed int
	if err := tx.QueryRowContext(ctx, activeContributedSumQuery, itemID).Scan(&contributed); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query activeContributedSumQuery: %s", err)
		return nil, "", err
	}
	remaining := int(locked.price.Int64) - contributed
	if remaining < 0 {
		remaining = 0
	}
	if amount > remaining {
		return nil, "", &models.ExceedsRemainingError{Remaining: remaining}
	}

	contribution := &models.Contribution{
		ID:        uuid.New(),
		ItemID:    itemID,
		Identity:  identity,
		GuestName: guestName,
		Amount:    amount,
	}
	userID, guestToken := identityColumns(identity)
	err = tx.QueryRowContext(ctx, insertContributionQuery,
		contribution.ID, itemID, userID, guestToken, guestName, amount).Scan(&contribution.CreatedAt)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query insertContributionQuery: %s", err)
		return nil, "", err
	}

	if err = tx.Commit(); err != nil {
		return nil, "", err
	}

	return contribution, locked.slug, nil
}

// CancelContribution withdraws an active contribution owned by the acting
// identity. It returns the affected item id alongside the wishlist slug
// for event publishing.
func (postgresql *PostgreSQL) CancelContribution(ctx context.Context, contributionID uuid.UUID, identity models.Identity) (uuid.UUID, string, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, "", err
	}
	defer tx.Rollback()

	var (
		itemID     uuid.UUID
		userID     uuid.NullUUID
		guestToken sql.NullString
		slug       string
	)
	err = tx.QueryRowContext(ctx, activeContributionQuery, contributionID).Scan(&itemID, &userID, &guestToken, &slug)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query activeContributionQuery: %s", err)
		return uuid.Nil, "", err
	}

	if !identityFromRow(userID, guestToken).Equal(identity) {
		return uuid.Nil, "", models.ErrForbidden
	}

	if _, err := tx.ExecContext(ctx, cancelContributionQuery, contributionID); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query cancelContributionQuery: %s", err)
		return uuid.Nil, "", err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, "", err
	}

	return itemID, slug, nil
}

// SetReservationEmail attaches a recovery email to an active reservation
// owned by the acting identity.
func (postgresql *PostgreSQL) SetReservationEmail(ctx context.Context, reservationID uuid.UUID, identity models.Identity, email string) error {
	return postgresql.setLedgerEmail(ctx, reservationIdentityQuery, setReservationEmailQuery, reservationID, identity, email)
}

// SetContributionEmail attaches a recovery email to an active contribution
// owned by the acting identity.
func (postgresql *PostgreSQL) SetContributionEmail(ctx context.Context, contributionID uuid.UUID, identity models.Identity, email string) error {
	return postgresql.setLedgerEmail(ctx, contributionIdentityQuery, setContributionEmailQuery, contributionID, identity, email)
}

func (postgresql *PostgreSQL) setLedgerEmail(ctx context.Context, identityQuery, updateQuery string, id uuid.UUID, identity models.Identity, email string) error {
	var (
		userID     uuid.NullUUID
		guestToken sql.NullString
	)
	err := postgresql.db.QueryRowContext(ctx, identityQuery, id).Scan(&userID, &guestToken)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to look up ledger row identity: %s", err)
		return err
	}

	if !identityFromRow(userID, guestToken).Equal(identity) {
		return models.ErrForbidden
	}

	if _, err := postgresql.db.ExecContext(ctx, updateQuery, email, id); err != nil {
		postgresql.log.Sugar().Errorf("Failed to update ledger row email: %s", err)
		return err
	}
	return nil
}

// FindGuestToken returns the guest token behind the most recent active
// reservation or contribution on the wishlist carrying the given recovery
// email. NotFound when the email matches nothing.
func (postgresql *PostgreSQL) FindGuestToken(ctx context.Context, wishlistID uuid.UUID, email string) (string, error) {
	var guestToken string
	err := postgresql.db.QueryRowContext(ctx, findGuestTokenQuery, wishlistID, email).Scan(&guestToken)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query findGuestTokenQuery: %s", err)
		return "", err
	}
	return guestToken, nil
}

// CreateRecoveryToken stores a single-use recovery token.
func (postgresql *PostgreSQL) CreateRecoveryToken(ctx context.Context, token, guestToken string, wishlistID uuid.UUID, expiresAt time.Time) error {
	_, err := postgresql.db.ExecContext(ctx, insertRecoveryTokenQuery, token, guestToken, wishlistID, expiresAt)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query insertRecoveryTokenQuery: %s", err)
		return err
	}
	return nil
}

// ConsumeRecoveryToken exchanges a recovery token for its guest token,
// marking it used in the same statement so it can never be redeemed twice.
// Expired and already-used tokens are distinguished so the API can tell
// the guest to request a fresh link rather than retry.
func (postgresql *PostgreSQL) ConsumeRecoveryToken(ctx context.Context, token string) (string, error) {
	var guestToken string
	err := postgresql.db.QueryRowContext(ctx, consumeRecoveryTokenQuery, token).Scan(&guestToken)
	if err == nil {
		return guestToken, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		postgresql.log.Sugar().Errorf("Failed to execute a query consumeRecoveryTokenQuery: %s", err)
		return "", err
	}

	var used, expired bool
	err = postgresql.db.QueryRowContext(ctx, inspectRecoveryTokenQuery, token).Scan(&used, &expired)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrInvalidToken
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query inspectRecoveryTokenQuery: %s", err)
		return "", err
	}
	if used {
		return "", models.ErrInvalidToken
	}
	if expired {
		return "", models.ErrExpiredToken
	}
	return "", models.ErrInvalidToken
}
