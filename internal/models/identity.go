package models

import "github.com/google/uuid"

// Identity is the acting party behind a mutating request: either an
// authenticated user or an anonymous guest holding a per-wishlist bearer
// token. Exactly one of the two variants is set; the zero Identity means
// the request carried no credentials at all.
type Identity struct {
	userID     uuid.UUID
	guestToken string
}

// UserIdentity builds an Identity for an authenticated user.
func UserIdentity(id uuid.UUID) Identity {
	return Identity{userID: id}
}

// GuestIdentity builds an Identity for a guest bearer token.
func GuestIdentity(token string) Identity {
	return Identity{guestToken: token}
}

// IsUser reports whether the identity is an authenticated user.
func (i Identity) IsUser() bool {
	return i.userID != uuid.Nil
}

// IsGuest reports whether the identity is a guest token holder.
func (i Identity) IsGuest() bool {
	return i.userID == uuid.Nil && i.guestToken != ""
}

// IsZero reports whether no identity was presented.
func (i Identity) IsZero() bool {
	return i.userID == uuid.Nil && i.guestToken == ""
}

// UserID returns the user id variant, if set.
func (i Identity) UserID() (uuid.UUID, bool) {
	return i.userID, i.IsUser()
}

// GuestToken returns the guest token variant, if set.
func (i Identity) GuestToken() (string, bool) {
	return i.guestToken, i.IsGuest()
}

// Equal compares two identities structurally within the same variant.
// Identities of different variants never match, and a zero identity
// matches nothing, including another zero identity.
func (i Identity) Equal(other Identity) bool {
	switch {
	case i.IsUser() && other.IsUser():
		return i.userID == other.userID
	case i.IsGuest() && other.IsGuest():
		return i.guestToken == other.guestToken
	}
	return false
}
