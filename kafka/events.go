package kafka

import "time"

// Event types
const (
	EventTypeUserRegistered  = "user.registered"
	EventTypeFavoriteToggled = "favorite.toggled"
	EventTypeFavoriteRemoved = "favorite.removed"
	EventTypeCartItemAdded   = "cart.item_added"
	EventTypeCartItemRemoved = "cart.item_removed"
)

// TopicStorefrontEvents is the default topic for storefront activity
const TopicStorefrontEvents = "storefront-events"

// Event is a storefront activity record published to Kafka
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	CakeID    uint      `json:"cake_id,omitempty"`
	Liked     *bool     `json:"liked,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserRegistered builds a user.registered event
func NewUserRegistered(userID uint) Event {
	return Event{EventType: EventTypeUserRegistered, UserID: userID}
}

// NewFavoriteToggled builds a favorite.toggled event
func NewFavoriteToggled(userID, cakeID uint, liked bool) Event {
	return Event{EventType: EventTypeFavoriteToggled, UserID: userID, CakeID: cakeID, Liked: &liked}
}

// NewFavoriteRemoved builds a favorite.removed event
func NewFavoriteRemoved(userID, cakeID uint) Event {
	return Event{EventType: EventTypeFavoriteRemoved, UserID: userID, CakeID: cakeID}
}

// NewCartItemAdded builds a cart.item_added event
func NewCartItemAdded(userID, cakeID uint) Event {
	return Event{EventType: EventTypeCartItemAdded, UserID: userID, CakeID: cakeID}
}

// NewCartItemRemoved builds a cart.item_removed event
func NewCartItemRemoved(userID, cakeID uint) Event {
	return Event{EventType: EventTypeCartItemRemoved, UserID: userID, CakeID: cakeID}
}
