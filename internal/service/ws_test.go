package service

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist/internal/app"
	"giftlist/internal/config"
	"giftlist/internal/models"
	"giftlist/internal/pkg/logger"
	"giftlist/internal/realtime"
	"giftlist/internal/storage/mocks"
)

func newWSTestServer(t *testing.T) (*mocks.MockStorage, *realtime.Hub, *httptest.Server) {
	l, err := logger.CreateLogger(config.LogLevel)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockDB := mocks.NewMockStorage(ctrl)
	hub := realtime.NewHub()
	appInstance := app.NewApp(mockDB, hub, nil, l)

	service := NewService(appInstance, hub, config.ServerRunAddress, l)
	testServer := httptest.NewServer(service.NewRouter())
	t.Cleanup(testServer.Close)

	return mockDB, hub, testServer
}

func wsURL(ts *httptest.Server, slug string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws/" + slug
}

func TestWSHandlerDeliversEvents(t *testing.T) {
	mockDB, hub, testServer := newWSTestServer(t)

	wishlist := &models.Wishlist{ID: uuid.New(), OwnerID: uuid.New(), Slug: "birthday-x7k2"}
	mockDB.EXPECT().GetWishlistBySlug(gomock.Any(), "birthday-x7k2").Return(wishlist, nil).Times(2)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(testServer, "birthday-x7k2"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.Subscribers("birthday-x7k2") == 1
	}, time.Second, 10*time.Millisecond)

	sent := models.Event{Type: models.EventItemReserved, ItemID: uuid.NewString()}
	hub.Publish("birthday-x7k2", sent)

	var received models.Event
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, sent, received)
}

func TestWSHandlerRejectsDeadSlug(t *testing.T) {
	mockDB, _, testServer := newWSTestServer(t)

	deleted := &models.Wishlist{ID: uuid.New(), Slug: "gone-x7k2", IsDeleted: true}
	mockDB.EXPECT().GetWishlistBySlug(gomock.Any(), "gone-x7k2").Return(deleted, nil)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(testServer, "gone-x7k2"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 410, resp.StatusCode)
}

func TestWSHandlerClosesWhenDeletedDuringSubscribe(t *testing.T) {
	mockDB, hub, testServer := newWSTestServer(t)

	live := &models.Wishlist{ID: uuid.New(), OwnerID: uuid.New(), Slug: "birthday-x7k2"}
	deleted := &models.Wishlist{ID: live.ID, OwnerID: live.OwnerID, Slug: live.Slug, IsDeleted: true}
	gomock.InOrder(
		mockDB.EXPECT().GetWishlistBySlug(gomock.Any(), "birthday-x7k2").Return(live, nil),
		mockDB.EXPECT().GetWishlistBySlug(gomock.Any(), "birthday-x7k2").Return(deleted, nil),
	)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(testServer, "birthday-x7k2"), nil)
	require.NoError(t, err)
	defer conn.Close()

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseGoingAway, closeErr.Code)

	assert.Equal(t, 0, hub.Subscribers("birthday-x7k2"), "the dead-topic subscriber must be detached")
}
