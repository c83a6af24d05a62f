// Package storage provides primitives for connecting to and interacting with
// data storage systems. It defines the Storage interface along with a
// PostgreSQL implementation that manages accounts, wishlists, items, the
// reservation and contribution ledgers, and guest recovery tokens.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"giftlist/internal/models"
	"giftlist/internal/pkg/logger"
	"giftlist/internal/pkg/security"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	createUserQuery = `INSERT INTO content.users (id, email, password_hash, name) VALUES ($1, $2, $3, $4);`
	checkUserQuery  = `SELECT id, password_hash, name FROM content.users WHERE email = $1;`

	createWishlistQuery = `INSERT INTO content.wishlists (id, owner_id, title, description, slug, emoji, event_date) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	getWishlistQuery    = `SELECT w.id, w.owner_id, u.name, w.title, w.description, w.slug, w.emoji, w.event_date, w.is_archived, w.is_deleted, w.created_at, w.updated_at
		FROM content.wishlists w JOIN content.users u ON u.id = w.owner_id WHERE w.id = $1;`
	getWishlistBySlugQuery = `SELECT w.id, w.owner_id, u.name, w.title, w.description, w.slug, w.emoji, w.event_date, w.is_archived, w.is_deleted, w.created_at, w.updated_at
		FROM content.wishlists w JOIN content.users u ON u.id = w.owner_id WHERE w.slug = $1;`
	listWishlistsQuery = `SELECT id, title, description, slug, emoji, event_date, is_archived, created_at, updated_at,
		(SELECT COUNT(*) FROM content.items i WHERE i.wishlist_id = w.id AND i.is_deleted = FALSE) AS items_count
		FROM content.wishlists w WHERE owner_id = $1 AND is_deleted = FALSE
		ORDER BY is_archived, updated_at DESC LIMIT $2 OFFSET $3;`
	countWishlistsQuery   = `SELECT COUNT(*) FROM content.wishlists WHERE owner_id = $1 AND is_deleted = FALSE;`
	updateWishlistQuery   = `UPDATE content.wishlists SET title = $1, description = $2, emoji = $3, event_date = $4, is_archived = $5, updated_at = NOW() WHERE id = $6 AND owner_id = $7 AND is_deleted = FALSE;`
	setWishlistDelQuery   = `UPDATE content.wishlists SET is_deleted = $1, updated_at = NOW() WHERE id = $2 AND owner_id = $3 AND is_deleted = $4 RETURNING slug;`
	slugExistsQuery       = `SELECT EXISTS (SELECT 1 FROM content.wishlists WHERE slug = $1);`
	ownerWishlistOfItem   = `SELECT w.slug FROM content.items i JOIN content.wishlists w ON w.id = i.wishlist_id WHERE i.id = $1 AND w.owner_id = $2 AND w.is_deleted = FALSE;`
	maxPositionQuery      = `SELECT COALESCE(MAX(position), 0) FROM content.items WHERE wishlist_id = $1;`
	createItemQuery       = `INSERT INTO content.items (id, wishlist_id, title, url, price, image_url, note, position) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	getItemQuery          = `SELECT id, wishlist_id, title, url, price, image_url, note, position, is_deleted, created_at, updated_at FROM content.items WHERE id = $1;`
	updateItemQuery       = `UPDATE content.items SET title = $1, url = $2, price = $3, image_url = $4, note = $5, updated_at = NOW() WHERE id = $6 AND is_deleted = FALSE;`
	setItemDeletedQuery   = `UPDATE content.items SET is_deleted = $1, updated_at = NOW() WHERE id = $2 AND is_deleted = $3;`
	countItemsQuery       = `SELECT COUNT(*) FROM content.items WHERE wishlist_id = $1 AND is_deleted = FALSE;`
	reorderItemQuery      = `UPDATE content.items SET position = $1, updated_at = NOW() WHERE id = $2 AND wishlist_id = $3 AND is_deleted = FALSE;`
	listItemsQuery        = `SELECT id, wishlist_id, title, url, price, image_url, note, position, is_deleted, created_at, updated_at FROM content.items WHERE wishlist_id = $1 AND is_deleted = FALSE ORDER BY position, created_at LIMIT $2 OFFSET $3;`
	pageReservationsQuery = `SELECT r.id, r.item_id, r.user_id, r.guest_token, r.guest_name, r.created_at
		FROM content.reservations r WHERE r.cancelled_at IS NULL AND r.item_id IN
		(SELECT id FROM content.items WHERE wishlist_id = $1 AND is_deleted = FALSE ORDER BY position, created_at LIMIT $2 OFFSET $3);`
	pageContributionsQuery = `SELECT c.id, c.item_id, c.user_id, c.guest_token, c.guest_name, c.amount, c.created_at
		FROM content.contributions c WHERE c.cancelled_at IS NULL AND c.item_id IN
		(SELECT id FROM content.items WHERE wishlist_id = $1 AND is_deleted = FALSE ORDER BY position, created_at LIMIT $2 OFFSET $3)
		ORDER BY c.created_at;`
)

// Storage defines the methods required for data storage operations.
type Storage interface {
	// Close closes the database connection.
	Close()

	// Authentication methods.
	CheckUser(ctx context.Context, user *models.User) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)

	// Wishlist methods.
	CreateWishlist(ctx context.Context, wishlist *models.Wishlist) error
	GetWishlist(ctx context.Context, id uuid.UUID) (*models.Wishlist, error)
	GetWishlistBySlug(ctx context.Context, slug string) (*models.Wishlist, error)
	ListWishlists(ctx context.Context, ownerID uuid.UUID, page, perPage int) (*models.PagedWishlists, error)
	UpdateWishlist(ctx context.Context, wishlist *models.Wishlist) error
	SetWishlistDeleted(ctx context.Context, id, ownerID uuid.UUID, deleted bool) (string, error)
	CountWishlists(ctx context.Context, ownerID uuid.UUID) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Item methods. Owner-scoped mutations return the wishlist slug for
	// realtime broadcasting.
	CreateItem(ctx context.Context, ownerID uuid.UUID, item *models.Item) (string, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	UpdateItem(ctx context.Context, ownerID uuid.UUID, item *models.Item) (string, error)
	SetItemDeleted(ctx context.Context, id, ownerID uuid.UUID, deleted bool) (string, error)
	CountItems(ctx context.Context, wishlistID uuid.UUID) (int, error)
	ReorderItems(ctx context.Context, wishlistID uuid.UUID, entries []models.ReorderEntry) error
	ListItems(ctx context.Context, wishlistID uuid.UUID, page, perPage int) (*models.PagedItems, error)

	// Ledger operations. All run inside a single transaction holding a
	// row lock on the item so concurrent writers serialize per item.
	ReserveItem(ctx context.Context, itemID uuid.UUID, identity models.Identity, guestName string) (*models.Reservation, string, error)
	CancelReservation(ctx context.Context, itemID uuid.UUID, identity models.Identity) (string, error)
	Contribute(ctx context.Context, itemID uuid.UUID, identity models.Identity, guestName string, amount int) (*models.Contribution, string, error)
	CancelContribution(ctx context.Context, contributionID uuid.UUID, identity models.Identity) (uuid.UUID, string, error)
	SetReservationEmail(ctx context.Context, reservationID uuid.UUID, identity models.Identity, email string) error
	SetContributionEmail(ctx context.Context, contributionID uuid.UUID, identity models.Identity, email string) error

	// Guest recovery.
	FindGuestToken(ctx context.Context, wishlistID uuid.UUID, email string) (string, error)
	CreateRecoveryToken(ctx context.Context, token, guestToken string, wishlistID uuid.UUID, expiresAt time.Time) error
	ConsumeRecoveryToken(ctx context.Context, token string) (string, error)
}

// PostgreSQL implements the Storage interface using a PostgreSQL database.
type PostgreSQL struct {
	db  *sql.DB        // Connection to the database.
	log *logger.Logger // Logger for recording events and errors.
}

// NewPostgreSQL creates a new PostgreSQL instance with the provided
// connection string and logger. It opens the connection and pings the
// database to ensure connectivity.
func NewPostgreSQL(configDBString string, l *logger.Logger) (*PostgreSQL, error) {
	db, err := sql.Open("pgx", configDBString)
	if err != nil {
		l.Sugar().Errorf("Failed to open a database: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	const defaultTimeout = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		l.Sugar().Errorf("Database ping failed: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	return &PostgreSQL{db: db, log: l}, nil
}

// Migrate applies pending schema migrations from the given directory.
func (postgresql *PostgreSQL) Migrate(migrationsPath string) error {
	driver, err := migratepg.WithInstance(postgresql.db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection if it is open.
func (postgresql *PostgreSQL) Close() {
	if postgresql.db != nil {
		postgresql.db.Close()
	}
}

// CheckUser verifies the user's credentials by retrieving the user's ID and
// encrypted password, then checking the provided password against the
// stored hash. A missing user is reported by returning the input unchanged
// with a nil ID.
func (postgresql *PostgreSQL) CheckUser(ctx context.Context, user *models.User) (*models.User, error) {
	var encryptedPassword string

	err := postgresql.db.QueryRowContext(ctx, checkUserQuery, user.Email).Scan(&user.ID, &encryptedPassword, &user.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return user, nil
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query checkUserQuery: %s", err)
		return user, err
	}

	err = security.CheckPassword(encryptedPassword, user.Password)
	if err != nil {
		postgresql.log.Sugar().Errorf(err.Error())
		return user, err
	}

	return user, nil
}

// CreateUser registers a new user by hashing the password and inserting the
// user into the database.
func (postgresql *PostgreSQL) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	encryptedPassword := security.HashPassword(user.Password)

	user.ID = uuid.New()
	_, err := postgresql.db.ExecContext(ctx, createUserQuery, user.ID, user.Email, encryptedPassword, user.Name)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createUserQuery: %s", err)
		return user, err
	}
	return user, nil
}

// CreateWishlist inserts a new wishlist row.
func (postgresql *PostgreSQL) CreateWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	_, err := postgresql.db.ExecContext(ctx, createWishlistQuery,
		wishlist.ID, wishlist.OwnerID, wishlist.Title, wishlist.Description, wishlist.Slug, wishlist.Emoji, wishlist.EventDate)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createWishlistQuery: %s", err)
		return err
	}
	return nil
}

func scanWishlist(row *sql.Row) (*models.Wishlist, error) {
	wishlist := &models.Wishlist{}
	var eventDate sql.NullTime
	err := row.Scan(&wishlist.ID, &wishlist.OwnerID, &wishlist.OwnerName, &wishlist.Title, &wishlist.Description,
		&wishlist.Slug, &wishlist.Emoji, &eventDate, &wishlist.IsArchived, &wishlist.IsDeleted,
		&wishlist.CreatedAt, &wishlist.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if eventDate.Valid {
		wishlist.EventDate = &eventDate.Time
	}
	return wishlist, nil
}

// GetWishlist retrieves a wishlist by id, including soft-deleted rows; the
// caller decides how deletion is surfaced.
func (postgresql *PostgreSQL) GetWishlist(ctx context.Context, id uuid.UUID) (*models.Wishlist, error) {
	wishlist, err := scanWishlist(postgresql.db.QueryRowContext(ctx, getWishlistQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getWishlistQuery: %s", err)
		return nil, err
	}
	return wishlist, nil
}

// GetWishlistBySlug retrieves a wishlist by its public slug, including
// soft-deleted rows.
func (postgresql *PostgreSQL) GetWishlistBySlug(ctx context.Context, slug string) (*models.Wishlist, error) {
	wishlist, err := scanWishlist(postgresql.db.QueryRowContext(ctx, getWishlistBySlugQuery, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getWishlistBySlugQuery: %s", err)
		return nil, err
	}
	return wishlist, nil
}

// ListWishlists returns a page of the owner's wishlists with item counts,
// active lists first, most recently updated first.
func (postgresql *PostgreSQL) ListWishlists(ctx context.Context, ownerID uuid.UUID, page, perPage int) (*models.PagedWishlists, error) {
	total, err := postgresql.CountWishlists(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := postgresql.db.QueryContext(ctx, listWishlistsQuery, ownerID, perPage, (page-1)*perPage)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listWishlistsQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	paged := &models.PagedWishlists{
		Items:   make([]models.WishlistResponse, 0, perPage),
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pageCount(total, perPage),
	}

	for rows.Next() {
		var (
			id               uuid.UUID
			eventDate        sql.NullTime
			created, updated time.Time
			resp             models.WishlistResponse
		)
		if err := rows.Scan(&id, &resp.Title, &resp.Description, &resp.Slug, &resp.Emoji, &eventDate,
			&resp.IsArchived, &created, &updated, &resp.ItemsCount); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan wishlist row in ListWishlists method: %s", err)
			return nil, err
		}
		resp.ID = id.String()
		if eventDate.Valid {
			resp.EventDate = eventDate.Time.Format("2006-01-02")
		}
		resp.CreatedAt = created.Format(time.RFC3339)
		resp.UpdatedAt = updated.Format(time.RFC3339)
		paged.Items = append(paged.Items, resp)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListWishlists method: %s", err)
		return paged, err
	}

	return paged, nil
}

// UpdateWishlist persists edited wishlist fields for the owning user.
func (postgresql *PostgreSQL) UpdateWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	result, err := postgresql.db.ExecContext(ctx, updateWishlistQuery,
		wishlist.Title, wishlist.Description, wishlist.Emoji, wishlist.EventDate, wishlist.IsArchived,
		wishlist.ID, wishlist.OwnerID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updateWishlistQuery: %s", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetWishlistDeleted toggles the soft-delete flag for the owner's wishlist
// and returns its slug. Restoring requires the row to currently be deleted
// and vice versa, which makes repeated deletes report NotFound.
func (postgresql *PostgreSQL) SetWishlistDeleted(ctx context.Context, id, ownerID uuid.UUID, deleted bool) (string, error) {
	var slug string
	err := postgresql.db.QueryRowContext(ctx, setWishlistDelQuery, deleted, id, ownerID, !deleted).Scan(&slug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query setWishlistDelQuery: %s", err)
		return "", err
	}
	return slug, nil
}

// CountWishlists returns the number of active wishlists owned by a user.
func (postgresql *PostgreSQL) CountWishlists(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := postgresql.db.QueryRowContext(ctx, countWishlistsQuery, ownerID).Scan(&count)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query countWishlistsQuery: %s", err)
		return 0, err
	}
	return count, nil
}

// SlugExists reports whether the slug is already taken by any non-purged
// wishlist, deleted or not.
func (postgresql *PostgreSQL) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := postgresql.db.QueryRowContext(ctx, slugExistsQuery, slug).Scan(&exists)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query slugExistsQuery: %s", err)
		return false, err
	}
	return exists, nil
}

// CreateItem appends an item at the end of the owner's wishlist and
// returns the wishlist slug. The position is assigned inside the same
// transaction as the insert so concurrent adds never collide.
func (postgresql *PostgreSQL) CreateItem(ctx context.Context, ownerID uuid.UUID, item *models.Item) (string, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var slug string
	err = tx.QueryRowContext(ctx,
		`SELECT slug FROM content.wishlists WHERE id = $1 AND owner_id = $2 AND is_deleted = FALSE FOR UPDATE;`,
		item.WishlistID, ownerID).Scan(&slug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to lock wishlist in CreateItem method: %s", err)
		return "", err
	}

	var maxPos int
	if err := tx.QueryRowContext(ctx, maxPositionQuery, item.WishlistID).Scan(&maxPos); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query maxPositionQuery: %s", err)
		return "", err
	}
	item.Position = maxPos + 1

	_, err = tx.ExecContext(ctx, createItemQuery,
		item.ID, item.WishlistID, item.Title, item.URL, item.Price, item.ImageURL, item.Note, item.Position)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createItemQuery: %s", err)
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}

	return slug, nil
}

// GetItem retrieves an item by id, including soft-deleted rows.
func (postgresql *PostgreSQL) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item := &models.Item{}
	var price sql.NullInt64
	err := postgresql.db.QueryRowContext(ctx, getItemQuery, id).Scan(
		&item.ID, &item.WishlistID, &item.Title, &item.URL, &price, &item.ImageURL, &item.Note,
		&item.Position, &item.IsDeleted, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getItemQuery: %s", err)
		return nil, err
	}
	if price.Valid {
		p := int(price.Int64)
		item.Price = &p
	}
	return item, nil
}

// UpdateItem persists edited item fields after verifying the caller owns
// the surrounding wishlist, and returns the wishlist slug.
func (postgresql *PostgreSQL) UpdateItem(ctx context.Context, ownerID uuid.UUID, item *models.Item) (string, error) {
	slug, err := postgresql.wishlistSlugForOwner(ctx, item.ID, ownerID)
	if err != nil {
		return "", err
	}

	result, err := postgresql.db.ExecContext(ctx, updateItemQuery,
		item.Title, item.URL, item.Price, item.ImageURL, item.Note, item.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updateItemQuery: %s", err)
		return "", err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", models.ErrNotFound
	}
	return slug, nil
}

// SetItemDeleted toggles the soft-delete flag on an item of the owner's
// wishlist and returns the wishlist slug.
func (postgresql *PostgreSQL) SetItemDeleted(ctx context.Context, id, ownerID uuid.UUID, deleted bool) (string, error) {
	slug, err := postgresql.wishlistSlugForOwner(ctx, id, ownerID)
	if err != nil {
		return "", err
	}

	result, err := postgresql.db.ExecContext(ctx, setItemDeletedQuery, deleted, id, !deleted)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query setItemDeletedQuery: %s", err)
		return "", err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", models.ErrNotFound
	}
	return slug, nil
}

func (postgresql *PostgreSQL) wishlistSlugForOwner(ctx context.Context, itemID, ownerID uuid.UUID) (string, error) {
	var slug string
	err := postgresql.db.QueryRowContext(ctx, ownerWishlistOfItem, itemID, ownerID).Scan(&slug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query ownerWishlistOfItem: %s", err)
		return "", err
	}
	return slug, nil
}

// CountItems returns the number of active items in a wishlist.
func (postgresql *PostgreSQL) CountItems(ctx context.Context, wishlistID uuid.UUID) (int, error) {
	var count int
	err := postgresql.db.QueryRowContext(ctx, countItemsQuery, wishlistID).Scan(&count)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query countItemsQuery: %s", err)
		return 0, err
	}
	return count, nil
}

// ReorderItems applies all position updates in a single transaction so
// concurrent readers never observe a partially-reordered list.
func (postgresql *PostgreSQL) ReorderItems(ctx context.Context, wishlistID uuid.UUID, entries []models.ReorderEntry) error {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, reorderItemQuery, entry.Position, entry.ID, wishlistID); err != nil {
			postgresql.log.Sugar().Errorf("Failed to execute a query reorderItemQuery: %s", err)
			return err
		}
	}

	return tx.Commit()
}

// ListItems returns a page of a wishlist's active items ordered by
// position, with their active reservation and contributions attached. The
// three reads run inside one repeatable-read transaction; read committed
// would hand each statement a fresh snapshot, letting a reorder committing
// mid-page detach activity rows from the items already selected.
func (postgresql *PostgreSQL) ListItems(ctx context.Context, wishlistID uuid.UUID, page, perPage int) (*models.PagedItems, error) {
	tx, err := postgresql.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, countItemsQuery, wishlistID).Scan(&total); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query countItemsQuery: %s", err)
		return nil, err
	}

	offset := (page - 1) * perPage

	items, index, err := postgresql.pageItems(ctx, tx, wishlistID, perPage, offset)
	if err != nil {
		return nil, err
	}

	if err := postgresql.attachReservations(ctx, tx, wishlistID, perPage, offset, index); err != nil {
		return nil, err
	}
	if err := postgresql.attachContributions(ctx, tx, wishlistID, perPage, offset, index); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.PagedItems{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pageCount(total, perPage),
	}, nil
}

func (postgresql *PostgreSQL) pageItems(ctx context.Context, tx *sql.Tx, wishlistID uuid.UUID, limit, offset int) ([]*models.Item, map[uuid.UUID]*models.Item, error) {
	rows, err := tx.QueryContext(ctx, listItemsQuery, wishlistID, limit, offset)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listItemsQuery: %s", err)
		return nil, nil, err
	}
	defer rows.Close()

	items := make([]*models.Item, 0, limit)
	index := make(map[uuid.UUID]*models.Item, limit)
	for rows.Next() {
		item := &models.Item{}
		var price sql.NullInt64
		if err := rows.Scan(&item.ID, &item.WishlistID, &item.Title, &item.URL, &price, &item.ImageURL,
			&item.Note, &item.Position, &item.IsDeleted, &item.CreatedAt, &item.UpdatedAt); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan item row in ListItems method: %s", err)
			return nil, nil, err
		}
		if price.Valid {
			p := int(price.Int64)
			item.Price = &p
		}
		items = append(items, item)
		index[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListItems method: %s", err)
		return nil, nil, err
	}
	return items, index, nil
}

func (postgresql *PostgreSQL) attachReservations(ctx context.Context, tx *sql.Tx, wishlistID uuid.UUID, limit, offset int, index map[uuid.UUID]*models.Item) error {
	rows, err := tx.QueryContext(ctx, pageReservationsQuery, wishlistID, limit, offset)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query pageReservationsQuery: %s", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		reservation := &models.Reservation{}
		var userID uuid.NullUUID
		var guestToken sql.NullString
		if err := rows.Scan(&reservation.ID, &reservation.ItemID, &userID, &guestToken,
			&reservation.GuestName, &reservation.CreatedAt); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan reservation row in ListItems method: %s", err)
			return err
		}
		reservation.Identity = identityFromRow(userID, guestToken)
		if item, ok := index[reservation.ItemID]; ok {
			item.Reservation = reservation
		}
	}
	return rows.Err()
}

func (postgresql *PostgreSQL) attachContributions(ctx context.Context, tx *sql.Tx, wishlistID uuid.UUID, limit, offset int, index map[uuid.UUID]*models.Item) error {
	rows, err := tx.QueryContext(ctx, pageContributionsQuery, wishlistID, limit, offset)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query pageContributionsQuery: %s", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		contribution := models.Contribution{}
		var userID uuid.NullUUID
		var guestToken sql.NullString
		if err := rows.Scan(&contribution.ID, &contribution.ItemID, &userID, &guestToken,
			&contribution.GuestName, &contribution.Amount, &contribution.CreatedAt); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan contribution row in ListItems method: %s", err)
			return err
		}
		contribution.Identity = identityFromRow(userID, guestToken)
		if item, ok := index[contribution.ItemID]; ok {
			item.Contributions = append(item.Contributions, contribution)
		}
	}
	return rows.Err()
}

// identityFromRow rebuilds the Identity sum type from nullable columns.
func identityFromRow(userID uuid.NullUUID, guestToken sql.NullString) models.Identity {
	if userID.Valid {
		return models.UserIdentity(userID.UUID)
	}
	if guestToken.Valid {
		return models.GuestIdentity(guestToken.String)
	}
	return models.Identity{}
}

func pageCount(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
