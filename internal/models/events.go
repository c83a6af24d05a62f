package models

// Realtime event types pushed to wishlist viewers. Events are
// cache-invalidation hints: they carry no payload beyond the item id and
// the receiver is expected to refetch for truth.
const (
	EventItemReserved        = "item_reserved"
	EventItemUnreserved      = "item_unreserved"
	EventContributionAdded   = "contribution_added"
	EventContributionRemoved = "contribution_removed"
	EventItemAdded           = "item_added"
	EventItemUpdated         = "item_updated"
	EventItemDeleted         = "item_deleted"
	EventWishlistDeleted     = "wishlist_deleted"
	EventPing                = "ping"
)

// Event is a single realtime frame for a wishlist topic.
type Event struct {
	Type   string `json:"type"`
	ItemID string `json:"item_id,omitempty"`
}
