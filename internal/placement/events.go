package placement

import "encoding/json"

// ============================================================
// Channel Events
// ============================================================

// Outbound events emitted by a client toward the room broadcaster.
const (
	EventJoinAlley   = "join_alley"
	EventLeaveAlley  = "leave_alley"
	EventAddItem     = "add_item"
	EventUpdateItem  = "update_item"
	EventRemoveItem  = "remove_item"
	EventClearDesign = "clear_design"
)

// Inbound events delivered by the broadcaster to room members.
const (
	EventLoadDesign    = "load_design"
	EventItemAdded     = "item_added"
	EventItemUpdated   = "item_updated"
	EventItemRemoved   = "item_removed"
	EventDesignCleared = "design_cleared"
	EventUserJoined    = "user_joined"
	EventUserLeft      = "user_left"
)

// JoinPayload identifies the alley room to join or leave.
type JoinPayload struct {
	AlleyID string `json:"alley_id"`
}

// ItemPayload carries a full item for add/update events.
type ItemPayload struct {
	AlleyID string `json:"alley_id"`
	Item    Item   `json:"item"`
}

// ItemIDPayload carries only an item id, for remove events.
type ItemIDPayload struct {
	AlleyID string `json:"alley_id"`
	ItemID  string `json:"item_id"`
}

// ClearPayload identifies the alley whose design is being cleared.
type ClearPayload struct {
	AlleyID string `json:"alley_id"`
}

// LoadDesignPayload is the authoritative item set sent to a joiner.
type LoadDesignPayload struct {
	Items []Item `json:"items"`
}

// NoticePayload is the human-readable text of presence events.
type NoticePayload struct {
	Message string `json:"message"`
}

// Envelope is one JSON frame on the realtime channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Emitter is the outbound side of the realtime channel. Broadcasts are
// fire-and-forget: the manager never waits for acknowledgment.
type Emitter interface {
	Emit(event string, payload any)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(event string, payload any)

func (f EmitterFunc) Emit(event string, payload any) {
	f(event, payload)
}
