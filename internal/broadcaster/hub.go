package broadcaster

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/placement"
)

// ============================================================
// Room Hub
// ============================================================

// member is one connected participant of the realtime channel. The hub
// addresses members only through this surface, so transports and tests
// can plug in their own.
type member interface {
	ID() string
	Send(event string, payload any) error
}

// room holds the authoritative ordered item set for one alley plus its
// current members. Mutations apply to the room copy before fan-out, so a
// late joiner always receives the current set.
type room struct {
	items   *placement.ItemSet
	members map[string]member
}

// Hub keeps per-alley rooms and relays item mutation events to every
// room member except the sender. It is a dumb relay: payloads are not
// validated, broadcasts carry no acknowledgment, and conflicting updates
// resolve in delivery order (last writer wins).
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
	// alley currently joined per member id; a member is in at most one room
	joined map[string]string
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]*room),
		joined: make(map[string]string),
	}
}

// Join moves m into the alley's room, creating the room empty when it
// does not exist yet. The joiner receives load_design with the current
// item set; everyone else in the room gets a user_joined notice. When
// the member switches rooms, the previous room gets the same user_left
// notice an explicit leave produces.
func (h *Hub) Join(m member, alleyID string) {
	h.mu.Lock()
	previous := h.leaveLocked(m)

	r, ok := h.rooms[alleyID]
	if !ok {
		r = &room{items: placement.NewItemSet(), members: make(map[string]member)}
		h.rooms[alleyID] = r
	}
	r.members[m.ID()] = m
	h.joined[m.ID()] = alleyID
	items := r.items.Snapshot()
	h.mu.Unlock()

	if previous != "" && previous != alleyID {
		h.broadcast(previous, m.ID(), placement.EventUserLeft, placement.NoticePayload{Message: "A resident left the design space"})
	}
	h.send(m, placement.EventLoadDesign, placement.LoadDesignPayload{Items: items})
	h.broadcast(alleyID, m.ID(), placement.EventUserJoined, placement.NoticePayload{Message: "A resident joined the design space"})
}

// Leave removes m from its room and notifies the remaining members.
func (h *Hub) Leave(m member) {
	h.mu.Lock()
	alleyID := h.leaveLocked(m)
	h.mu.Unlock()

	if alleyID != "" {
		h.broadcast(alleyID, m.ID(), placement.EventUserLeft, placement.NoticePayload{Message: "A resident left the design space"})
	}
}

// Disconnect is Leave for a dropped connection.
func (h *Hub) Disconnect(m member) {
	h.Leave(m)
}

// leaveLocked detaches m from its current room and returns the alley it
// was in, or "". Empty rooms are kept: the item set is the room's state
// and survives everyone leaving.
func (h *Hub) leaveLocked(m member) string {
	alleyID, ok := h.joined[m.ID()]
	if !ok {
		return ""
	}
	delete(h.joined, m.ID())
	if r, ok := h.rooms[alleyID]; ok {
		delete(r.members, m.ID())
	}
	return alleyID
}

// AddItem appends the item to the room copy and relays item_added to the
// other members.
func (h *Hub) AddItem(m member, p placement.ItemPayload) {
	h.mu.Lock()
	r, ok := h.rooms[p.AlleyID]
	if !ok {
		r = &room{items: placement.NewItemSet(), members: make(map[string]member)}
		h.rooms[p.AlleyID] = r
	}
	r.items.Append(p.Item)
	h.mu.Unlock()

	h.broadcast(p.AlleyID, m.ID(), placement.EventItemAdded, p)
}

// UpdateItem replaces the room copy of the item when present and relays
// item_updated regardless, preserving the fire-and-forget relay contract.
func (h *Hub) UpdateItem(m member, p placement.ItemPayload) {
	h.mu.Lock()
	if r, ok := h.rooms[p.AlleyID]; ok {
		r.items.Replace(p.Item)
	}
	h.mu.Unlock()

	h.broadcast(p.AlleyID, m.ID(), placement.EventItemUpdated, p)
}

// RemoveItem deletes from the room copy and relays item_removed.
func (h *Hub) RemoveItem(m member, p placement.ItemIDPayload) {
	h.mu.Lock()
	if r, ok := h.rooms[p.AlleyID]; ok {
		r.items.Remove(p.ItemID)
	}
	h.mu.Unlock()

	h.broadcast(p.AlleyID, m.ID(), placement.EventItemRemoved, p)
}

// ClearDesign empties the room copy and tells every other member to drop
// their entire item set.
func (h *Hub) ClearDesign(m member, p placement.ClearPayload) {
	h.mu.Lock()
	if r, ok := h.rooms[p.AlleyID]; ok {
		r.items.Clear()
	}
	h.mu.Unlock()

	h.broadcast(p.AlleyID, m.ID(), placement.EventDesignCleared, struct{}{})
}

// RoomItems returns a copy of the alley's current item set.
func (h *Hub) RoomItems(alleyID string) []placement.Item {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[alleyID]
	if !ok {
		return []placement.Item{}
	}
	return r.items.Snapshot()
}

// Dispatch routes one decoded envelope from m to the matching handler.
func (h *Hub) Dispatch(m member, env placement.Envelope) error {
	switch env.Event {
	case placement.EventJoinAlley:
		var p placement.JoinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", env.Event, err)
		}
		h.Join(m, p.AlleyID)

	case placement.EventLeaveAlley:
		h.Leave(m)

	case placement.EventAddItem:
		var p placement.ItemPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", env.Event, err)
		}
		h.AddItem(m, p)

	case placement.EventUpdateItem:
		var p placement.ItemPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", env.Event, err)
		}
		h.UpdateItem(m, p)

	case placement.EventRemoveItem:
		var p placement.ItemIDPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", env.Event, err)
		}
		h.RemoveItem(m, p)

	case placement.EventClearDesign:
		var p placement.ClearPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", env.Event, err)
		}
		h.ClearDesign(m, p)

	default:
		return fmt.Errorf("unknown event %q", env.Event)
	}
	return nil
}

// broadcast fans out to every room member except the sender. A failed
// write only logs; the protocol has no delivery guarantee to uphold.
func (h *Hub) broadcast(alleyID, senderID, event string, payload any) {
	h.mu.Lock()
	r, ok := h.rooms[alleyID]
	if !ok {
		h.mu.Unlock()
		return
	}
	targets := make([]member, 0, len(r.members))
	for id, m := range r.members {
		if id == senderID {
			continue
		}
		targets = append(targets, m)
	}
	h.mu.Unlock()

	for _, m := range targets {
		h.send(m, event, payload)
	}
}

func (h *Hub) send(m member, event string, payload any) {
	if err := m.Send(event, payload); err != nil {
		log.Printf("[HUB] send %s to %s: %v", event, m.ID(), err)
	}
}
