// Package models defines the data structures used throughout the application:
// domain entities persisted by the storage layer, request and response
// payloads for the HTTP API, realtime event frames, and the shared error
// taxonomy.
package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthRequest represents the authentication request payload.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the generic error payload. Remaining is populated only
// for contribution-overshoot errors so the client can retry with a
// corrected amount.
type ErrorResponse struct {
	Errors    string `json:"errors"`
	Remaining *int   `json:"remaining,omitempty"`
}

// User represents an account holder. Password is the plaintext credential
// carried only between the handler and the storage check; it is never
// persisted.
type User struct {
	ID       uuid.UUID
	Email    string
	Password string
	Name     string
}

// Wishlist is an owner's named collection of items, reachable publicly via
// its slug. The slug is unique across all non-purged wishlists and
// immutable once issued.
type Wishlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	OwnerName   string
	Title       string
	Description string
	Slug        string
	Emoji       string
	EventDate   *time.Time
	IsArchived  bool
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Item is a single desired gift entry within a wishlist. A nil Price means
// the item is not contribution-eligible. Position orders items within the
// wishlist and is densely reassigned on reorder.
type Item struct {
	ID            uuid.UUID
	WishlistID    uuid.UUID
	Title         string
	URL           string
	Price         *int
	ImageURL      string
	Note          string
	Position      int
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Reservation   *Reservation
	Contributions []Contribution
}

// Reservation is a claim by one identity to provide an item, blocking
// other reservations while active. CancelledAt is nil for active rows.
type Reservation struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	Identity    Identity
	GuestName   string
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// Contribution is a partial monetary pledge by one identity toward an
// item's price. CancelledAt is nil for active rows.
type Contribution struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	Identity    Identity
	GuestName   string
	Amount      int
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// ReserveRequest is the payload for reserving an item.
type ReserveRequest struct {
	GuestName string `json:"guest_name"`
}

// ReserveResponse confirms a reservation to the acting client. GuestToken
// is present only when a new guest identity was minted by this request.
type ReserveResponse struct {
	ID         string `json:"id"`
	ItemID     string `json:"item_id"`
	GuestName  string `json:"guest_name,omitempty"`
	GuestToken string `json:"guest_token,omitempty"`
	IsMine     bool   `json:"is_mine"`
	CreatedAt  string `json:"created_at"`
}

// ContributeRequest is the payload for contributing toward an item.
type ContributeRequest struct {
	GuestName string `json:"guest_name"`
	Amount    int    `json:"amount"`
}

// ContributeResponse confirms a contribution to the acting client.
type ContributeResponse struct {
	ID         string `json:"id"`
	ItemID     string `json:"item_id"`
	GuestName  string `json:"guest_name,omitempty"`
	Amount     int    `json:"amount"`
	GuestToken string `json:"guest_token,omitempty"`
	IsMine     bool   `json:"is_mine"`
	CreatedAt  string `json:"created_at"`
}

// UpdateEmailRequest attaches a recovery email to a reservation or
// contribution after the fact.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// RecoverRequest asks for guest identity recovery by email.
type RecoverRequest struct {
	Email        string `json:"email"`
	WishlistSlug string `json:"wishlist_slug"`
}

// RecoverResponse acknowledges a recovery request. The body is identical
// whether or not the email matched; RecoveryToken is filled only on the
// trusted dev channel.
type RecoverResponse struct {
	Detail        string `json:"detail"`
	RecoveryToken string `json:"recovery_token,omitempty"`
}

// VerifyRequest exchanges a recovery token.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse returns the recovered guest token.
type VerifyResponse struct {
	GuestToken string `json:"guest_token"`
}

// WishlistCreateRequest is the payload for creating a wishlist.
type WishlistCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	EventDate   string `json:"event_date"` // YYYY-MM-DD, optional
}

// WishlistUpdateRequest carries partial wishlist edits; nil fields are
// left untouched.
type WishlistUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Emoji       *string `json:"emoji"`
	EventDate   *string `json:"event_date"`
	IsArchived  *bool   `json:"is_archived"`
}

// WishlistResponse is the owner-facing wishlist payload.
type WishlistResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	Emoji       string `json:"emoji"`
	EventDate   string `json:"event_date,omitempty"`
	IsArchived  bool   `json:"is_archived"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	ItemsCount  int    `json:"items_count"`
}

// PagedWishlists is a page of the owner's wishlists.
type PagedWishlists struct {
	Items   []WishlistResponse `json:"items"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
	Pages   int                `json:"pages"`
}

// ItemCreateRequest is the payload for adding an item to a wishlist.
type ItemCreateRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Price    *int   `json:"price"`
	ImageURL string `json:"image_url"`
	Note     string `json:"note"`
}

// ItemUpdateRequest carries partial item edits; nil fields are left
// untouched.
type ItemUpdateRequest struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Price    *int    `json:"price"`
	ImageURL *string `json:"image_url"`
	Note     *string `json:"note"`
}

// OwnerItem is the owner-facing item payload. It carries aggregate
// reservation and contribution state only: no guest names, no tokens and
// no per-row detail ever appear here.
type OwnerItem struct {
	ID                string `json:"id"`
	WishlistID        string `json:"wishlist_id"`
	Title             string `json:"title"`
	URL               string `json:"url,omitempty"`
	Price             *int   `json:"price,omitempty"`
	ImageURL          string `json:"image_url,omitempty"`
	Note              string `json:"note,omitempty"`
	Position          int    `json:"position"`
	IsReserved        bool   `json:"is_reserved"`
	TotalContributed  int    `json:"total_contributed"`
	ContributorsCount int    `json:"contributors_count"`
	IsFullyCollected  bool   `json:"is_fully_collected"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// PagedOwnerItems is a page of owner-facing items.
type PagedOwnerItems struct {
	Items   []OwnerItem `json:"items"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Pages   int         `json:"pages"`
}

// PublicReservation is the guest-facing view of a reservation. IsMine is
// computed against the requesting identity; the owning token itself is
// never serialized.
type PublicReservation struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	GuestName string `json:"guest_name,omitempty"`
	IsMine    bool   `json:"is_mine"`
	CreatedAt string `json:"created_at"`
}

// PublicContribution is the guest-facing view of a contribution.
type PublicContribution struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	GuestName string `json:"guest_name,omitempty"`
	Amount    int    `json:"amount"`
	IsMine    bool   `json:"is_mine"`
	CreatedAt string `json:"created_at"`
}

// PublicItem is the guest-facing item payload, including per-reservation
// and per-contribution detail.
type PublicItem struct {
	ID                string               `json:"id"`
	WishlistID        string               `json:"wishlist_id"`
	Title             string               `json:"title"`
	URL               string               `json:"url,omitempty"`
	Price             *int                 `json:"price,omitempty"`
	ImageURL          string               `json:"image_url,omitempty"`
	Note              string               `json:"note,omitempty"`
	Position          int                  `json:"position"`
	IsReserved        bool                 `json:"is_reserved"`
	TotalContributed  int                  `json:"total_contributed"`
	ContributorsCount int                  `json:"contributors_count"`
	IsFullyCollected  bool                 `json:"is_fully_collected"`
	Reservation       *PublicReservation   `json:"reservation"`
	Contributions     []PublicContribution `json:"contributions"`
	CreatedAt         string               `json:"created_at"`
	UpdatedAt         string               `json:"updated_at"`
}

// PagedPublicItems is a page of guest-facing items, ordered by position.
type PagedPublicItems struct {
	Items   []PublicItem `json:"items"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Pages   int          `json:"pages"`
}

// PublicWishlist is the payload served to anyone holding the slug.
type PublicWishlist struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Slug        string           `json:"slug"`
	Emoji       string           `json:"emoji"`
	EventDate   string           `json:"event_date,omitempty"`
	IsArchived  bool             `json:"is_archived"`
	OwnerName   string           `json:"owner_name"`
	ItemsData   PagedPublicItems `json:"items_data"`
	IsOwner     bool             `json:"is_owner"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

// ReorderEntry pairs an item with its requested position.
type ReorderEntry struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// ReorderRequest is the payload for reordering a wishlist's items.
type ReorderRequest struct {
	Items []ReorderEntry `json:"items"`
}

// PagedItems is a storage-level page of items with their activity rows
// attached, before visibility filtering.
type PagedItems struct {
	Items   []*Item
	Total   int
	Page    int
	PerPage int
	Pages   int
}
