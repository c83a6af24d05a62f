package app

import (
	"context"
	"sort"
	"time"

	"giftlist/internal/models"
	"giftlist/internal/pkg/security"

	"github.com/google/uuid"
)

// ProcessCreateWishlist creates a wishlist for the owner, generating a
// unique immutable slug from the title. Slug collisions are resolved by
// re-rolling the random suffix.
func (app *App) ProcessCreateWishlist(ctx context.Context, ownerID uuid.UUID, req models.WishlistCreateRequest) (*models.WishlistResponse, error) {
	if req.Title == "" {
		return nil, ErrMissingTitle
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		return nil, err
	}

	count, err := app.db.CountWishlists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= maxWishlistsPerUser {
		return nil, ErrWishlistLimit
	}

	emoji := req.Emoji
	if emoji == "" {
		emoji = "🎁"
	}

	wishlist := &models.Wishlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Emoji:       emoji,
		EventDate:   eventDate,
	}

	slug, err := app.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	wishlist.Slug = slug

	if err := app.db.CreateWishlist(ctx, wishlist); err != nil {
		return nil, err
	}

	now := time.Now()
	wishlist.CreatedAt = now
	wishlist.UpdatedAt = now
	return wishlistResponse(wishlist, 0), nil
}

const slugAttempts = 5

func (app *App) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := security.Slugify(title)
	for i := 0; i < slugAttempts; i++ {
		candidate := base + "-" + security.SlugSuffix()
		exists, err := app.db.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", models.ErrConflict
}

// ProcessListWishlists returns a page of the owner's wishlists.
func (app *App) ProcessListWishlists(ctx context.Context, ownerID uuid.UUID, page, perPage int) (*models.PagedWishlists, error) {
	page, perPage = normalizePage(page, perPage)
	return app.db.ListWishlists(ctx, ownerID, page, perPage)
}

// ProcessGetWishlist returns a single wishlist owned by the caller.
func (app *App) ProcessGetWishlist(ctx context.Context, ownerID, id uuid.UUID) (*models.WishlistResponse, error) {
	wishlist, err := app.ownedWishlist(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	count, err := app.db.CountItems(ctx, wishlist.ID)
	if err != nil {
		return nil, err
	}
	return wishlistResponse(wishlist, count), nil
}

// ProcessUpdateWishlist applies partial edits to the owner's wishlist.
// The slug never changes.
func (app *App) ProcessUpdateWishlist(ctx context.Context, ownerID, id uuid.UUID, req models.WishlistUpdateRequest) (*models.WishlistResponse, error) {
	wishlist, err := app.ownedWishlist(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrMissingTitle
		}
		wishlist.Title = *req.Title
	}
	if req.Description != nil {
		wishlist.Description = *req.Description
	}
	if req.Emoji != nil {
		wishlist.Emoji = *req.Emoji
	}
	if req.EventDate != nil {
		eventDate, err := parseEventDate(*req.EventDate)
		if err != nil {
			return nil, err
		}
		wishlist.EventDate = eventDate
	}
	if req.IsArchived != nil {
		wishlist.IsArchived = *req.IsArchived
	}

	if err := app.db.UpdateWishlist(ctx, wishlist); err != nil {
		return nil, err
	}

	count, err := app.db.CountItems(ctx, wishlist.ID)
	if err != nil {
		return nil, err
	}
	wishlist.UpdatedAt = time.Now()
	return wishlistResponse(wishlist, count), nil
}

// ProcessDeleteWishlist soft-deletes the owner's wishlist, notifies
// viewers and closes the realtime topic.
func (app *App) ProcessDeleteWishlist(ctx context.Context, ownerID, id uuid.UUID) error {
	slug, err := app.db.SetWishlistDeleted(ctx, id, ownerID, true)
	if err != nil {
		return err
	}

	app.publish(slug, models.EventWishlistDeleted, uuid.Nil)
	app.hub.CloseTopic(slug)
	return nil
}

// ProcessRestoreWishlist reverses a soft delete. The slug is retained, so
// previously shared links work again.
func (app *App) ProcessRestoreWishlist(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := app.db.SetWishlistDeleted(ctx, id, ownerID, false)
	return err
}

// ProcessCreateItem appends an item to the owner's wishlist.
func (app *App) ProcessCreateItem(ctx context.Context, ownerID, wishlistID uuid.UUID, req models.ItemCreateRequest) (*models.OwnerItem, error) {
	if req.Title == "" {
		return nil, ErrMissingTitle
	}
	if req.Price != nil && *req.Price <= 0 {
		return nil, ErrInvalidAmount
	}

	count, err := app.db.CountItems(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if count >= maxItemsPerWishlist {
		return nil, ErrItemLimit
	}

	item := &models.Item{
		ID:         uuid.New(),
		WishlistID: wishlistID,
		Title:      req.Title,
		URL:        req.URL,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		Note:       req.Note,
	}

	slug, err := app.db.CreateItem(ctx, ownerID, item)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	app.publish(slug, models.EventItemAdded, item.ID)
	return ownerItem(item), nil
}

// ProcessUpdateItem applies partial edits to an item of the owner's
// wishlist.
func (app *App) ProcessUpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req models.ItemUpdateRequest) (*models.OwnerItem, error) {
	item, err := app.db.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsDeleted {
		return nil, models.ErrNotFound
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrMissingTitle
		}
		item.Title = *req.Title
	}
	if req.URL != nil {
		item.URL = *req.URL
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidAmount
		}
		item.Price = req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Note != nil {
		item.Note = *req.Note
	}

	slug, err := app.db.UpdateItem(ctx, ownerID, item)
	if err != nil {
		return nil, err
	}

	item.UpdatedAt = time.Now()
	app.publish(slug, models.EventItemUpdated, item.ID)
	return ownerItem(item), nil
}

// ProcessDeleteItem soft-deletes an item of the owner's wishlist.
func (app *App) ProcessDeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	slug, err := app.db.SetItemDeleted(ctx, itemID, ownerID, true)
	if err != nil {
		return err
	}
	app.publish(slug, models.EventItemDeleted, itemID)
	return nil
}

// ProcessRestoreItem reverses an item soft delete.
func (app *App) ProcessRestoreItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	slug, err := app.db.SetItemDeleted(ctx, itemID, ownerID, false)
	if err != nil {
		return err
	}
	app.publish(slug, models.EventItemAdded, itemID)
	return nil
}

// ProcessReorder rewrites item positions on the owner's wishlist.
// Requested positions are normalized to a dense 1..n sequence ordered by
// the requested values, and the whole rewrite is applied atomically.
func (app *App) ProcessReorder(ctx context.Context, ownerID, wishlistID uuid.UUID, req models.ReorderRequest) error {
	wishlist, err := app.ownedWishlist(ctx, ownerID, wishlistID)
	if err != nil {
		return err
	}

	if len(req.Items) == 0 {
		return ErrEmptyReorder
	}
	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	for _, entry := range req.Items {
		if _, ok := seen[entry.ID]; ok {
			return ErrDuplicateReorderID
		}
		seen[entry.ID] = struct{}{}
	}

	entries := make([]models.ReorderEntry, len(req.Items))
	copy(entries, req.Items)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})
	for i := range entries {
		entries[i].Position = i + 1
	}

	if err := app.db.ReorderItems(ctx, wishlistID, entries); err != nil {
		return err
	}

	app.publish(wishlist.Slug, models.EventItemUpdated, uuid.Nil)
	return nil
}

// ProcessOwnerItems returns a page of the owner's items with aggregate
// activity only. Guest names and identities never appear in owner
// payloads.
func (app *App) ProcessOwnerItems(ctx context.Context, ownerID, wishlistID uuid.UUID, page, perPage int) (*models.PagedOwnerItems, error) {
	if _, err := app.ownedWishlist(ctx, ownerID, wishlistID); err != nil {
		return nil, err
	}

	page, perPage = normalizePage(page, perPage)
	paged, err := app.db.ListItems(ctx, wishlistID, page, perPage)
	if err != nil {
		return nil, err
	}

	out := &models.PagedOwnerItems{
		Items:   make([]models.OwnerItem, 0, len(paged.Items)),
		Total:   paged.Total,
		Page:    paged.Page,
		PerPage: paged.PerPage,
		Pages:   paged.Pages,
	}
	for _, item := range paged.Items {
		out.Items = append(out.Items, *ownerItem(item))
	}
	return out, nil
}

// ProcessPublicWishlist builds the guest-facing view for anyone holding
// the slug. A soft-deleted wishlist is Gone rather than NotFound. The
// owner viewing their own public page gets aggregates only, like every
// owner surface.
func (app *App) ProcessPublicWishlist(ctx context.Context, identity models.Identity, slug string, page, perPage int) (*models.PublicWishlist, error) {
	wishlist, err := app.db.GetWishlistBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if wishlist.IsDeleted {
		return nil, models.ErrGone
	}

	isOwner := false
	if userID, ok := identity.UserID(); ok {
		isOwner = userID == wishlist.OwnerID
	}

	page, perPage = normalizePage(page, perPage)
	paged, err := app.db.ListItems(ctx, wishlist.ID, page, perPage)
	if err != nil {
		return nil, err
	}

	items := make([]models.PublicItem, 0, len(paged.Items))
	for _, item := range paged.Items {
		items = append(items, *publicItem(item, identity, isOwner))
	}

	return &models.PublicWishlist{
		ID:          wishlist.ID.String(),
		Title:       wishlist.Title,
		Description: wishlist.Description,
		Slug:        wishlist.Slug,
		Emoji:       wishlist.Emoji,
		EventDate:   formatDate(wishlist.EventDate),
		IsArchived:  wishlist.IsArchived,
		OwnerName:   wishlist.OwnerName,
		IsOwner:     isOwner,
		ItemsData: models.PagedPublicItems{
			Items:   items,
			Total:   paged.Total,
			Page:    paged.Page,
			PerPage: paged.PerPage,
			Pages:   paged.Pages,
		},
		CreatedAt: wishlist.CreatedAt.Format(time.RFC3339),
		UpdatedAt: wishlist.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ProcessCheckSlug verifies a wishlist slug refers to a live wishlist
// before a realtime subscription is accepted.
func (app *App) ProcessCheckSlug(ctx context.Context, slug string) error {
	wishlist, err := app.db.GetWishlistBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if wishlist.IsDeleted {
		return models.ErrGone
	}
	return nil
}

// ownedWishlist loads a wishlist and verifies the caller owns it. A
// wishlist owned by someone else reports NotFound so ids are not
// probeable.
func (app *App) ownedWishlist(ctx context.Context, ownerID, id uuid.UUID) (*models.Wishlist, error) {
	wishlist, err := app.db.GetWishlist(ctx, id)
	if err != nil {
		return nil, err
	}
	if wishlist.OwnerID != ownerID || wishlist.IsDeleted {
		return nil, models.ErrNotFound
	}
	return wishlist, nil
}

func wishlistResponse(wishlist *models.Wishlist, itemsCount int) *models.WishlistResponse {
	return &models.WishlistResponse{
		ID:          wishlist.ID.String(),
		Title:       wishlist.Title,
		Description: wishlist.Description,
		Slug:        wishlist.Slug,
		Emoji:       wishlist.Emoji,
		EventDate:   formatDate(wishlist.EventDate),
		IsArchived:  wishlist.IsArchived,
		CreatedAt:   wishlist.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   wishlist.UpdatedAt.Format(time.RFC3339),
		ItemsCount:  itemsCount,
	}
}

func itemTotals(item *models.Item) (total, contributors int) {
	distinct := make(map[models.Identity]struct{}, len(item.Contributions))
	for _, c := range item.Contributions {
		total += c.Amount
		distinct[c.Identity] = struct{}{}
	}
	return total, len(distinct)
}

func ownerItem(item *models.Item) *models.OwnerItem {
	total, contributors := itemTotals(item)
	return &models.OwnerItem{
		ID:                item.ID.String(),
		WishlistID:        item.WishlistID.String(),
		Title:             item.Title,
		URL:               item.URL,
		Price:             item.Price,
		ImageURL:          item.ImageURL,
		Note:              item.Note,
		Position:          item.Position,
		IsReserved:        item.Reservation != nil,
		TotalContributed:  total,
		ContributorsCount: contributors,
		IsFullyCollected:  item.Price != nil && total >= *item.Price,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         item.UpdatedAt.Format(time.RFC3339),
	}
}

func publicItem(item *models.Item, viewer models.Identity, hideDetail bool) *models.PublicItem {
	total, contributors := itemTotals(item)
	out := &models.PublicItem{
		ID:                item.ID.String(),
		WishlistID:        item.WishlistID.String(),
		Title:             item.Title,
		URL:               item.URL,
		Price:             item.Price,
		ImageURL:          item.ImageURL,
		Note:              item.Note,
		Position:          item.Position,
		IsReserved:        item.Reservation != nil,
		TotalContributed:  total,
		ContributorsCount: contributors,
		IsFullyCollected:  item.Price != nil && total >= *item.Price,
		Contributions:     []models.PublicContribution{},
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         item.UpdatedAt.Format(time.RFC3339),
	}
	if hideDetail {
		return out
	}

	if item.Reservation != nil {
		out.Reservation = &models.PublicReservation{
			ID:        item.Reservation.ID.String(),
			ItemID:    item.ID.String(),
			GuestName: item.Reservation.GuestName,
			IsMine:    item.Reservation.Identity.Equal(viewer),
			CreatedAt: item.Reservation.CreatedAt.Format(time.RFC3339),
		}
	}
	for _, c := range item.Contributions {
		out.Contributions = append(out.Contributions, models.PublicContribution{
			ID:        c.ID.String(),
			ItemID:    c.ItemID.String(),
			GuestName: c.GuestName,
			Amount:    c.Amount,
			IsMine:    c.Identity.Equal(viewer),
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
