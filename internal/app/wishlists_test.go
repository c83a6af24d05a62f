package app

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist/internal/config"
	"giftlist/internal/models"
	"giftlist/internal/pkg/logger"
	"giftlist/internal/realtime"
	"giftlist/internal/storage/mocks"
)

func newTestApp(t *testing.T) (*mocks.MockStorage, *App) {
	l, err := logger.CreateLogger(config.LogLevel)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockDB := mocks.NewMockStorage(ctrl)
	return mockDB, NewApp(mockDB, realtime.NewHub(), nil, l)
}

func TestProcessReorderNormalizesPositions(t *testing.T) {
	mockDB, appInstance := newTestApp(t)

	ownerID := uuid.New()
	wishlistID := uuid.New()
	first, second, third := uuid.New(), uuid.New(), uuid.New()

	mockDB.EXPECT().GetWishlist(gomock.Any(), wishlistID).
		Return(&models.Wishlist{ID: wishlistID, OwnerID: ownerID, Slug: "birthday-x7k2"}, nil)

	var applied []models.ReorderEntry
	mockDB.EXPECT().ReorderItems(gomock.Any(), wishlistID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, entries []models.ReorderEntry) error {
			applied = entries
			return nil
		})

	// sparse, out-of-order positions come back dense in requested order
	err := appInstance.ProcessReorder(context.Background(), ownerID, wishlistID, models.ReorderRequest{
		Items: []models.ReorderEntry{
			{ID: first, Position: 10},
			{ID: second, Position: 3},
			{ID: third, Position: 7},
		},
	})
	require.NoError(t, err)

	require.Len(t, applied, 3)
	assert.Equal(t, models.ReorderEntry{ID: second, Position: 1}, applied[0])
	assert.Equal(t, models.ReorderEntry{ID: third, Position: 2}, applied[1])
	assert.Equal(t, models.ReorderEntry{ID: first, Position: 3}, applied[2])
}

func TestProcessReorderRejectsDuplicates(t *testing.T) {
	mockDB, appInstance := newTestApp(t)

	ownerID := uuid.New()
	wishlistID := uuid.New()
	itemID := uuid.New()

	mockDB.EXPECT().GetWishlist(gomock.Any(), wishlistID).
		Return(&models.Wishlist{ID: wishlistID, OwnerID: ownerID}, nil)

	err := appInstance.ProcessReorder(context.Background(), ownerID, wishlistID, models.ReorderRequest{
		Items: []models.ReorderEntry{
			{ID: itemID, Position: 1},
			{ID: itemID, Position: 2},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateReorderID)
}

func TestProcessReorderForeignWishlist(t *testing.T) {
	mockDB, appInstance := newTestApp(t)

	wishlistID := uuid.New()
	mockDB.EXPECT().GetWishlist(gomock.Any(), wishlistID).
		Return(&models.Wishlist{ID: wishlistID, OwnerID: uuid.New()}, nil)

	err := appInstance.ProcessReorder(context.Background(), uuid.New(), wishlistID, models.ReorderRequest{
		Items: []models.ReorderEntry{{ID: uuid.New(), Position: 1}},
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProcessCreateWishlistLimit(t *testing.T) {
	mockDB, appInstance := newTestApp(t)

	ownerID := uuid.New()
	mockDB.EXPECT().CountWishlists(gomock.Any(), ownerID).Return(maxWishlistsPerUser, nil)

	_, err := appInstance.ProcessCreateWishlist(context.Background(), ownerID,
		models.WishlistCreateRequest{Title: "One too many"})
	assert.ErrorIs(t, err, ErrWishlistLimit)
}

func TestProcessCreateWishlistSlug(t *testing.T) {
	mockDB, appInstance := newTestApp(t)

	ownerID := uuid.New()
	mockDB.EXPECT().CountWishlists(gomock.Any(), ownerID).Return(0, nil)

	var slug string
	mockDB.EXPECT().SlugExists(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, candidate string) (bool, error) {
			slug = candidate
			return false, nil
		})
	mockDB.EXPECT().CreateWishlist(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, wishlist *models.Wishlist) error {
			assert.Equal(t, slug, wishlist.Slug)
			return nil
		})

	resp, err := appInstance.ProcessCreateWishlist(context.Background(), ownerID,
		models.WishlistCreateRequest{Title: "Dasha's 30th Birthday!"})
	require.NoError(t, err)

	assert.Regexp(t, `^dasha-s-30th-birthday-[a-z0-9]{4}$`, resp.Slug)
	assert.Equal(t, "🎁", resp.Emoji)
}

func TestProcessPublicWishlistOwnerAggregatesOnly(t *testing.T) {
	mockDB, appInstance := newTestApp(t)

	ownerID := uuid.New()
	wishlistID := uuid.New()
	itemID := uuid.New()
	price := 500

	mockDB.EXPECT().GetWishlistBySlug(gomock.Any(), "birthday-x7k2").
		Return(&models.Wishlist{ID: wishlistID, OwnerID: ownerID, Slug: "birthday-x7k2"}, nil)
	mockDB.EXPECT().ListItems(gomock.Any(), wishlistID, 1, 20).
		Return(&models.PagedItems{
			Items: []*models.Item{{
				ID:         itemID,
				WishlistID: wishlistID,
				Title:      "Lego",
				Price:      &price,
				Reservation: &models.Reservation{
					ID: uuid.New(), ItemID: itemID,
					Identity: models.GuestIdentity("secret-token"), GuestName: "Lena",
				},
				Contributions: []models.Contribution{
					{ID: uuid.New(), ItemID: itemID, Identity: models.GuestIdentity("secret-token"), Amount: 200},
					{ID: uuid.New(), ItemID: itemID, Identity: models.GuestIdentity("other-token"), Amount: 300},
				},
			}},
			Total: 1, Page: 1, PerPage: 20, Pages: 1,
		}, nil)

	resp, err := appInstance.ProcessPublicWishlist(context.Background(),
		models.UserIdentity(ownerID), "birthday-x7k2", 1, 20)
	require.NoError(t, err)

	assert.True(t, resp.IsOwner)
	require.Len(t, resp.ItemsData.Items, 1)
	item := resp.ItemsData.Items[0]
	assert.Nil(t, item.Reservation)
	assert.Empty(t, item.Contributions)
	assert.True(t, item.IsReserved)
	assert.Equal(t, 500, item.TotalContributed)
	assert.Equal(t, 2, item.ContributorsCount)
	assert.True(t, item.IsFullyCollected)
}
