package integrations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"giftlist/internal/app"
	"giftlist/internal/config"
	"giftlist/internal/models"
	"giftlist/internal/pkg/logger"
	"giftlist/internal/realtime"
	"giftlist/internal/service"
	"giftlist/internal/storage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"
)

var testDatabaseURI string

func init() {
	if err := godotenv.Load("../integration/.env"); err != nil {
		log.Println("No .env file found, using default values")
	}

	testDatabaseURI = os.Getenv("TEST_DATABASE_URI")
}

type IntegrationTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *http.Client
	db     *storage.PostgreSQL
}

func (s *IntegrationTestSuite) SetupSuite() {
	if testDatabaseURI == "" {
		s.T().Skip("TEST_DATABASE_URI is not set, skipping integration tests")
	}

	var l *logger.Logger
	var err error
	if l, err = logger.CreateLogger("info"); err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	s.db, err = storage.NewPostgreSQL(testDatabaseURI, l)
	s.Require().NoError(err, "Error connecting to test database")
	s.Require().NoError(s.db.Migrate("../../migrations"), "Error running migrations")

	// recovery tokens come back in the response instead of email
	config.DevMode = true

	hub := realtime.NewHub()
	appInstance := app.NewApp(s.db, hub, nil, l)
	serviceInstance := service.NewService(appInstance, hub, "localhost:0", l)

	s.server = httptest.NewServer(serviceInstance.NewRouter())
	s.client = s.server.Client()
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

func (s *IntegrationTestSuite) authenticate() string {
	authReq := models.AuthRequest{
		Email:    "owner-" + uuid.NewString() + "@example.com",
		Password: "password",
	}
	reqBody, err := json.Marshal(authReq)
	s.Require().NoError(err, "Error marshaling authentication request")

	resp, err := s.client.Post(s.server.URL+"/api/auth", "application/json", bytes.NewBuffer(reqBody))
	s.Require().NoError(err, "Error sending authentication request")
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for authentication")

	var authResp models.AuthResponse
	err = json.NewDecoder(resp.Body).Decode(&authResp)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding authentication response")
	s.Require().NotEmpty(authResp.Token, "Token should not be empty")
	return authResp.Token
}

func (s *IntegrationTestSuite) do(method, path string, payload any, headers map[string]string) (*http.Response, []byte) {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err, "Error marshaling request payload")
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err, "Error creating request")
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Error executing request")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err, "Error reading response body")
	return resp, raw
}

func (s *IntegrationTestSuite) createWishlist(token, title string) models.WishlistResponse {
	resp, raw := s.do(http.MethodPost, "/api/wishlists",
		models.WishlistCreateRequest{Title: title, Emoji: "🎂"},
		map[string]string{"Authorization": "Bearer " + token})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "Expected status 201 for wishlist creation")

	var wishlist models.WishlistResponse
	s.Require().NoError(json.Unmarshal(raw, &wishlist), "Error decoding wishlist response")
	return wishlist
}

func (s *IntegrationTestSuite) createItem(token, wishlistID, title string, price *int) models.OwnerItem {
	resp, raw := s.do(http.MethodPost, "/api/wishlists/"+wishlistID+"/items",
		models.ItemCreateRequest{Title: title, Price: price},
		map[string]string{"Authorization": "Bearer " + token})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "Expected status 201 for item creation")

	var item models.OwnerItem
	s.Require().NoError(json.Unmarshal(raw, &item), "Error decoding item response")
	return item
}

func (s *IntegrationTestSuite) TestReservationRace() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Race Day")
	item := s.createItem(token, wishlist.ID, "Headphones", nil)

	const racers = 8
	statuses := make(chan int, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, _ := s.do(http.MethodPost, "/api/items/"+item.ID+"/reserve",
				models.ReserveRequest{GuestName: "racer"}, nil)
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	created, conflicts := 0, 0
	for status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			s.Failf("unexpected status", "got %d", status)
		}
	}

	s.Require().Equal(1, created, "Exactly one concurrent reserver should win")
	s.Require().Equal(racers-1, conflicts, "Every loser should get a conflict")
}

func (s *IntegrationTestSuite) TestContributionCap() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Funding Goal")
	price := 1000
	item := s.createItem(token, wishlist.ID, "Espresso Machine", &price)

	contribute := func(amount int) (*http.Response, []byte) {
		return s.do(http.MethodPost, "/api/items/"+item.ID+"/contribute",
			models.ContributeRequest{Amount: amount}, nil)
	}

	resp, _ := contribute(600)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "First contribution should land")

	resp, raw := contribute(500)
	s.Require().Equal(http.StatusConflict, resp.StatusCode, "Overshoot should be rejected")
	var errResp models.ErrorResponse
	s.Require().NoError(json.Unmarshal(raw, &errResp), "Error decoding overshoot response")
	s.Require().NotNil(errResp.Remaining, "Overshoot must report remaining")
	s.Require().Equal(400, *errResp.Remaining)

	resp, _ = contribute(400)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "Exact remaining should land")

	resp, raw = contribute(100)
	s.Require().Equal(http.StatusConflict, resp.StatusCode, "Fully funded item should reject further pledges")
	s.Require().NoError(json.Unmarshal(raw, &errResp), "Error decoding fully-funded response")
	s.Require().NotNil(errResp.Remaining)
	s.Require().Equal(0, *errResp.Remaining)
}

func (s *IntegrationTestSuite) TestConcurrentContributionsNeverOvershoot() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Concurrent Funding")
	price := 500
	item := s.createItem(token, wishlist.ID, "Board Game", &price)

	const contributors = 8
	var wg sync.WaitGroup
	for i := 0; i < contributors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.do(http.MethodPost, "/api/items/"+item.ID+"/contribute",
				models.ContributeRequest{Amount: 200}, nil)
		}()
	}
	wg.Wait()

	resp, raw := s.do(http.MethodGet, "/api/wishlists/public/"+wishlist.Slug, nil, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var publicResp models.PublicWishlist
	s.Require().NoError(json.Unmarshal(raw, &publicResp), "Error decoding public wishlist")
	s.Require().Len(publicResp.ItemsData.Items, 1)

	total := publicResp.ItemsData.Items[0].TotalContributed
	s.Require().LessOrEqual(total, price, "Active contributions must never exceed the price")
	s.Require().Equal(400, total, "Two of the 200s should have landed")
}

func (s *IntegrationTestSuite) TestCancelIdempotence() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Cancel Twice")
	item := s.createItem(token, wishlist.ID, "Scarf", nil)

	resp, raw := s.do(http.MethodPost, "/api/items/"+item.ID+"/reserve", nil, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var reserveResp models.ReserveResponse
	s.Require().NoError(json.Unmarshal(raw, &reserveResp), "Error decoding reserve response")
	s.Require().NotEmpty(reserveResp.GuestToken, "Anonymous reserve should mint a guest token")

	guestHeader := map[string]string{"X-Guest-Token": reserveResp.GuestToken}

	resp, _ = s.do(http.MethodDelete, "/api/items/"+item.ID+"/reserve", nil, guestHeader)
	s.Require().Equal(http.StatusNoContent, resp.StatusCode, "First cancel should succeed")

	resp, _ = s.do(http.MethodDelete, "/api/items/"+item.ID+"/reserve", nil, guestHeader)
	s.Require().Equal(http.StatusNotFound, resp.StatusCode, "Second cancel should find nothing active")
}

func (s *IntegrationTestSuite) TestCancelByStrangerForbidden() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Not Yours")
	item := s.createItem(token, wishlist.ID, "Mug", nil)

	resp, _ := s.do(http.MethodPost, "/api/items/"+item.ID+"/reserve", nil, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, "/api/items/"+item.ID+"/reserve", nil,
		map[string]string{"X-Guest-Token": uuid.NewString()})
	s.Require().Equal(http.StatusForbidden, resp.StatusCode, "Only the reserving identity may cancel")
}

func (s *IntegrationTestSuite) TestRecoveryRoundTrip() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Lost Token")
	item := s.createItem(token, wishlist.ID, "Puzzle", nil)

	resp, raw := s.do(http.MethodPost, "/api/items/"+item.ID+"/reserve",
		models.ReserveRequest{GuestName: "Lena"}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var reserveResp models.ReserveResponse
	s.Require().NoError(json.Unmarshal(raw, &reserveResp), "Error decoding reserve response")
	guestToken := reserveResp.GuestToken
	s.Require().NotEmpty(guestToken)

	email := "lena-" + uuid.NewString() + "@example.com"
	resp, _ = s.do(http.MethodPatch, "/api/reservations/"+reserveResp.ID+"/email",
		models.UpdateEmailRequest{Email: email},
		map[string]string{"X-Guest-Token": guestToken})
	s.Require().Equal(http.StatusNoContent, resp.StatusCode, "Attaching a recovery email should succeed")

	resp, raw = s.do(http.MethodPost, "/api/guest/recover",
		models.RecoverRequest{Email: email, WishlistSlug: wishlist.Slug}, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var recoverResp models.RecoverResponse
	s.Require().NoError(json.Unmarshal(raw, &recoverResp), "Error decoding recover response")
	s.Require().NotEmpty(recoverResp.RecoveryToken, "Dev mode should return the recovery token")

	resp, raw = s.do(http.MethodPost, "/api/guest/verify",
		models.VerifyRequest{Token: recoverResp.RecoveryToken}, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var verifyResp models.VerifyResponse
	s.Require().NoError(json.Unmarshal(raw, &verifyResp), "Error decoding verify response")
	s.Require().Equal(guestToken, verifyResp.GuestToken, "Recovery should return the original guest token")

	resp, _ = s.do(http.MethodPost, "/api/guest/verify",
		models.VerifyRequest{Token: recoverResp.RecoveryToken}, nil)
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode, "Recovery tokens are single-use")
}

func (s *IntegrationTestSuite) TestOwnerSerializationPrivacy() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "No Spoilers")
	price := 300
	item := s.createItem(token, wishlist.ID, "Secret Gift", &price)

	resp, _ := s.do(http.MethodPost, "/api/items/"+item.ID+"/reserve",
		models.ReserveRequest{GuestName: "VerySecretFriend"}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, raw := s.do(http.MethodGet, "/api/wishlists/"+wishlist.ID+"/items", nil,
		map[string]string{"Authorization": "Bearer " + token})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body := string(raw)
	s.Require().NotContains(body, "VerySecretFriend", "Owner payloads must not leak guest names")
	s.Require().NotContains(body, "guest_token", "Owner payloads must not leak tokens")
	s.Require().NotContains(body, "is_mine", "Owner payloads carry aggregates only")

	var items models.PagedOwnerItems
	s.Require().NoError(json.Unmarshal(raw, &items), "Error decoding owner items")
	s.Require().Len(items.Items, 1)
	s.Require().True(items.Items[0].IsReserved, "Owner still sees the aggregate reservation flag")
}

func (s *IntegrationTestSuite) TestPaginationStableAcrossReorder() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Big List")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	const itemCount = 15
	const perPage = 10

	ids := make([]uuid.UUID, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		item := s.createItem(token, wishlist.ID, fmt.Sprintf("Gift %02d", i+1), nil)
		ids = append(ids, uuid.MustParse(item.ID))
	}

	readPage := func(page int) []models.PublicItem {
		resp, raw := s.do(http.MethodGet,
			fmt.Sprintf("/api/wishlists/public/%s?page=%d&per_page=%d", wishlist.Slug, page, perPage), nil, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var publicResp models.PublicWishlist
		s.Require().NoError(json.Unmarshal(raw, &publicResp), "Error decoding public wishlist page")
		return publicResp.ItemsData.Items
	}

	firstPage := readPage(1)
	s.Require().Len(firstPage, perPage)

	// shuffle each page's items among their own slots, so page membership
	// is unchanged while every position moves
	entries := make([]models.ReorderEntry, 0, itemCount)
	for i := perPage - 1; i >= 0; i-- {
		entries = append(entries, models.ReorderEntry{ID: ids[i], Position: len(entries) + 1})
	}
	for i := itemCount - 1; i >= perPage; i-- {
		entries = append(entries, models.ReorderEntry{ID: ids[i], Position: len(entries) + 1})
	}

	resp, _ := s.do(http.MethodPatch, "/api/wishlists/"+wishlist.ID+"/items/reorder",
		models.ReorderRequest{Items: entries}, authHeader)
	s.Require().Equal(http.StatusNoContent, resp.StatusCode, "Reorder should land between the page reads")

	secondPage := readPage(2)
	s.Require().Len(secondPage, itemCount-perPage)

	seen := make(map[string]struct{}, itemCount)
	for _, item := range firstPage {
		seen[item.ID] = struct{}{}
	}
	for _, item := range secondPage {
		_, dup := seen[item.ID]
		s.Require().False(dup, "Item %s appeared on both pages across the reorder", item.ID)
		seen[item.ID] = struct{}{}
	}
	s.Require().Len(seen, itemCount, "No item may be dropped across the paged reads")

	// page 2 reflects the reversed order within its own slots
	for i, item := range secondPage {
		s.Require().Equal(ids[itemCount-1-i].String(), item.ID, "Page 2 should come back in the reordered sequence")
	}
}

func (s *IntegrationTestSuite) TestDeletedWishlistIsGone() {
	token := s.authenticate()
	wishlist := s.createWishlist(token, "Short Lived")

	resp, _ := s.do(http.MethodDelete, "/api/wishlists/"+wishlist.ID, nil,
		map[string]string{"Authorization": "Bearer " + token})
	s.Require().Equal(http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/wishlists/public/"+wishlist.Slug, nil, nil)
	s.Require().Equal(http.StatusGone, resp.StatusCode, "Deleted wishlist should be 410, not 404")

	resp, _ = s.do(http.MethodGet, "/api/wishlists/public/never-was-"+uuid.NewString(), nil, nil)
	s.Require().Equal(http.StatusNotFound, resp.StatusCode, "Unknown slug stays 404")
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
