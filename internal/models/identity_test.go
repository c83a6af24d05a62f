package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityVariants(t *testing.T) {
	userID := uuid.New()

	user := UserIdentity(userID)
	assert.True(t, user.IsUser())
	assert.False(t, user.IsGuest())
	assert.False(t, user.IsZero())

	guest := GuestIdentity("token-a")
	assert.True(t, guest.IsGuest())
	assert.False(t, guest.IsUser())

	var zero Identity
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsUser())
	assert.False(t, zero.IsGuest())
}

func TestIdentityEqual(t *testing.T) {
	userID := uuid.New()

	assert.True(t, UserIdentity(userID).Equal(UserIdentity(userID)))
	assert.False(t, UserIdentity(userID).Equal(UserIdentity(uuid.New())))

	assert.True(t, GuestIdentity("token-a").Equal(GuestIdentity("token-a")))
	assert.False(t, GuestIdentity("token-a").Equal(GuestIdentity("token-b")))

	// different variants never match
	assert.False(t, UserIdentity(userID).Equal(GuestIdentity("token-a")))

	// the zero identity matches nothing, including itself
	var zero Identity
	assert.False(t, zero.Equal(zero))
	assert.False(t, zero.Equal(GuestIdentity("token-a")))
	assert.False(t, GuestIdentity("token-a").Equal(zero))
}
