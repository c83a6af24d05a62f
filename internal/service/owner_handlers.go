package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"giftlist/internal/models"
	"giftlist/internal/pkg/auth"

	"github.com/google/uuid"
)

// ownerID extracts the authenticated user's id placed in the context by
// the JWT middleware.
func ownerID(res http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	userID, ok := req.Context().Value(auth.ContextUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// createWishlistHandler creates a wishlist for the authenticated owner.
func (handlers *handlers) createWishlistHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}

	var createRequest models.WishlistCreateRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &createRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	wishlist, err := handlers.app.ProcessCreateWishlist(ctx, userID, createRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, wishlist, http.StatusCreated)
}

// listWishlistsHandler returns a page of the owner's wishlists.
func (handlers *handlers) listWishlistsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}

	page, perPage := pageParams(req)
	wishlists, err := handlers.app.ProcessListWishlists(ctx, userID, page, perPage)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, wishlists, http.StatusOK)
}

// getWishlistHandler returns a single wishlist owned by the caller.
func (handlers *handlers) getWishlistHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	wishlistID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	wishlist, err := handlers.app.ProcessGetWishlist(ctx, userID, wishlistID)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, wishlist, http.StatusOK)
}

// updateWishlistHandler applies partial edits to the owner's wishlist.
func (handlers *handlers) updateWishlistHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	wishlistID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	var updateRequest models.WishlistUpdateRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &updateRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	wishlist, err := handlers.app.ProcessUpdateWishlist(ctx, userID, wishlistID, updateRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, wishlist, http.StatusOK)
}

// deleteWishlistHandler soft-deletes the owner's wishlist.
func (handlers *handlers) deleteWishlistHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	wishlistID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	if err := handlers.app.ProcessDeleteWishlist(ctx, userID, wishlistID); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// restoreWishlistHandler reverses a wishlist soft delete.
func (handlers *handlers) restoreWishlistHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	wishlistID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	if err := handlers.app.ProcessRestoreWishlist(ctx, userID, wishlistID); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// listItemsHandler returns a page of the owner's items with aggregate
// activity only.
func (handlers *handlers) listItemsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	wishlistID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	page, perPage := pageParams(req)
	items, err := handlers.app.ProcessOwnerItems(ctx, userID, wishlistID, page, perPage)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, items, http.StatusOK)
}

// createItemHandler appends an item to the owner's wishlist.
func (handlers *handlers) createItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	wishlistID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	var createRequest models.ItemCreateRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &createRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := handlers.app.ProcessCreateItem(ctx, userID, wishlistID, createRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, item, http.StatusCreated)
}

// reorderHandler rewrites item positions on the owner's wishlist.
func (handlers *handlers) reorderHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	wishlistID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	var reorderRequest models.ReorderRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &reorderRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handlers.app.ProcessReorder(ctx, userID, wishlistID, reorderRequest); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// updateItemHandler applies partial edits to an item of the owner's
// wishlist.
func (handlers *handlers) updateItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	var updateRequest models.ItemUpdateRequest
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err = json.Unmarshal(requestBody, &updateRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := handlers.app.ProcessUpdateItem(ctx, userID, itemID, updateRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSONResponse(res, item, http.StatusOK)
}

// deleteItemHandler soft-deletes an item of the owner's wishlist.
func (handlers *handlers) deleteItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	if err := handlers.app.ProcessDeleteItem(ctx, userID, itemID); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// restoreItemHandler reverses an item soft delete.
func (handlers *handlers) restoreItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := ownerID(res, req)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(res, req, "id")
	if !ok {
		return
	}

	if err := handlers.app.ProcessRestoreItem(ctx, userID, itemID); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}
