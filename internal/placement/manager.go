package placement

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// ============================================================
// Placement State Manager
// ============================================================

// Manager holds the client-side replica of the placed items for one
// joined alley room. Local user actions apply optimistically and emit a
// broadcast; inbound events from the channel mirror into local state
// without re-emitting, so no echo loops form.
//
// The manager follows the browser execution model it replaces: all calls
// happen on a single event loop, so there is no internal locking.
// Concurrent edits to the same item resolve last-applied-wins, in channel
// delivery order.
type Manager struct {
	alleyID string
	items   *ItemSet
	emitter Emitter

	now func() time.Time
}

// NewManager returns a manager that emits outbound events through the
// given emitter. A nil emitter drops broadcasts, which is useful for an
// offline canvas.
func NewManager(emitter Emitter) *Manager {
	return &Manager{
		items:   NewItemSet(),
		emitter: emitter,
		now:     time.Now,
	}
}

// AlleyID returns the id of the currently joined room, or "".
func (m *Manager) AlleyID() string {
	return m.alleyID
}

// Items returns a copy of the current ordered item set.
func (m *Manager) Items() []Item {
	return m.items.Snapshot()
}

// Join requests the authoritative item set for alleyID. Local state is
// cleared immediately; the replacement arrives as a load_design event.
// The protocol is fire-and-forget, so there is no connecting/joined
// distinction.
func (m *Manager) Join(alleyID string) {
	m.alleyID = alleyID
	m.items.Clear()
	m.emit(EventJoinAlley, JoinPayload{AlleyID: alleyID})
}

// Leave departs the current room and clears local state.
func (m *Manager) Leave() {
	if m.alleyID == "" {
		return
	}
	m.emit(EventLeaveAlley, JoinPayload{AlleyID: m.alleyID})
	m.alleyID = ""
	m.items.Clear()
}

// AddOptions are the optional fields of AddItem. Zero width/height fall
// back to the default template size.
type AddOptions struct {
	Width       float64
	Height      float64
	CustomImage string
}

// AddItem constructs a new item with a fresh id, appends it to local
// state and broadcasts item addition. The broadcaster is a dumb relay;
// no server-side validation is assumed.
func (m *Manager) AddItem(itemType, subtype string, x, y float64, opts AddOptions) Item {
	tw, th := TemplateSize(itemType, subtype)
	width := opts.Width
	if width <= 0 {
		width = tw
	}
	height := opts.Height
	if height <= 0 {
		height = th
	}

	item := Item{
		ID:          m.newItemID(),
		Type:        itemType,
		Subtype:     subtype,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		ZIndex:      m.items.Len(),
		CustomImage: opts.CustomImage,
	}

	m.items.Append(item)
	m.emit(EventAddItem, ItemPayload{AlleyID: m.alleyID, Item: item})
	return item
}

// UpdateItem replaces the local item with the matching id (full-field
// replace, not a patch) and broadcasts the update. Updating an id that is
// not present locally is a no-op and emits nothing.
func (m *Manager) UpdateItem(item Item) bool {
	if !m.items.Replace(item) {
		return false
	}
	m.emit(EventUpdateItem, ItemPayload{AlleyID: m.alleyID, Item: item})
	return true
}

// RemoveItem deletes the item locally and broadcasts the removal.
func (m *Manager) RemoveItem(id string) bool {
	if !m.items.Remove(id) {
		return false
	}
	m.emit(EventRemoveItem, ItemIDPayload{AlleyID: m.alleyID, ItemID: id})
	return true
}

// Clear empties local state and tells every room member to drop their
// entire item set.
func (m *Manager) Clear() {
	m.items.Clear()
	m.emit(EventClearDesign, ClearPayload{AlleyID: m.alleyID})
}

// ============================================================
// Inbound Reducer
// ============================================================

// Apply mirrors one inbound channel event into local state. Remote
// events never re-broadcast. Events apply in delivery order; there is no
// causal ordering restoration, and a repeated item_updated is idempotent.
func (m *Manager) Apply(event string, data json.RawMessage) error {
	switch event {
	case EventLoadDesign:
		var p LoadDesignPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		m.items.ReplaceAll(p.Items)

	case EventItemAdded:
		var p ItemPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		m.items.Append(p.Item)

	case EventItemUpdated:
		var p ItemPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		// Last-applied-wins: overwrite with no merge. An update for an
		// unknown id is dropped, matching the relay's reconcile loop.
		m.items.Replace(p.Item)

	case EventItemRemoved:
		var p ItemIDPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		m.items.Remove(p.ItemID)

	case EventDesignCleared:
		m.items.Clear()

	case EventUserJoined, EventUserLeft:
		// Presence notices carry no state.

	default:
		return fmt.Errorf("unknown event %q", event)
	}
	return nil
}

// ============================================================
// ID Generation
// ============================================================

const idSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newItemID builds "item-<unix millis>-<random base36 suffix>". The
// suffix keeps ids distinct when two items land in the same millisecond.
// Uniqueness holds within a room, not globally across rooms.
func (m *Manager) newItemID() string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteByte(idSuffixAlphabet[rand.IntN(len(idSuffixAlphabet))])
	}
	return fmt.Sprintf("item-%d-%s", m.now().UnixMilli(), b.String())
}

func (m *Manager) emit(event string, payload any) {
	if m.emitter == nil {
		return
	}
	m.emitter.Emit(event, payload)
}
