package broadcaster

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/placement"
)

type fakeMember struct {
	id     string
	events []recordedEvent
}

type recordedEvent struct {
	name    string
	payload any
}

func (f *fakeMember) ID() string { return f.id }

func (f *fakeMember) Send(event string, payload any) error {
	f.events = append(f.events, recordedEvent{name: event, payload: payload})
	return nil
}

func (f *fakeMember) lastEvent(t *testing.T) recordedEvent {
	t.Helper()
	if len(f.events) == 0 {
		t.Fatalf("member %s received no events", f.id)
	}
	return f.events[len(f.events)-1]
}

func (f *fakeMember) eventNames() []string {
	names := make([]string, len(f.events))
	for i, ev := range f.events {
		names[i] = ev.name
	}
	return names
}

func TestJoinSendsLoadDesignAndNotifiesOthers(t *testing.T) {
	h := NewHub()
	first := &fakeMember{id: "c1"}
	second := &fakeMember{id: "c2"}

	h.Join(first, "alley-1")

	load := first.lastEvent(t)
	if load.name != placement.EventLoadDesign {
		t.Fatalf("expected load_design to the joiner, got %q", load.name)
	}
	if items := load.payload.(placement.LoadDesignPayload).Items; len(items) != 0 {
		t.Fatalf("expected empty design for a fresh alley, got %d items", len(items))
	}

	h.Join(second, "alley-1")
	if got := first.lastEvent(t).name; got != placement.EventUserJoined {
		t.Fatalf("expected user_joined relayed to existing member, got %q", got)
	}
	// The joiner must not receive its own presence notice.
	for _, name := range second.eventNames() {
		if name == placement.EventUserJoined {
			t.Fatalf("joiner received its own user_joined")
		}
	}
}

func TestLateJoinerReceivesCurrentItems(t *testing.T) {
	h := NewHub()
	editor := &fakeMember{id: "editor"}
	h.Join(editor, "alley-1")

	item := placement.Item{ID: "item-1", Type: "plant", Subtype: "tree", X: 100, Y: 200, Width: 80, Height: 150}
	h.AddItem(editor, placement.ItemPayload{AlleyID: "alley-1", Item: item})
	item.X = 150
	h.UpdateItem(editor, placement.ItemPayload{AlleyID: "alley-1", Item: item})

	late := &fakeMember{id: "late"}
	h.Join(late, "alley-1")

	load := late.events[0]
	if load.name != placement.EventLoadDesign {
		t.Fatalf("expected load_design first, got %q", load.name)
	}
	items := load.payload.(placement.LoadDesignPayload).Items
	if len(items) != 1 || items[0].X != 150 {
		t.Fatalf("expected the updated item in the snapshot, got %+v", items)
	}
}

func TestMutationsRelayToOthersOnly(t *testing.T) {
	h := NewHub()
	sender := &fakeMember{id: "sender"}
	peer := &fakeMember{id: "peer"}
	outsider := &fakeMember{id: "outsider"}
	h.Join(sender, "alley-1")
	h.Join(peer, "alley-1")
	h.Join(outsider, "alley-2")

	item := placement.Item{ID: "item-9", Type: "art", Subtype: "mural-1", Width: 120, Height: 90}
	h.AddItem(sender, placement.ItemPayload{AlleyID: "alley-1", Item: item})
	h.RemoveItem(sender, placement.ItemIDPayload{AlleyID: "alley-1", ItemID: "item-9"})

	wantPeer := []string{placement.EventLoadDesign, placement.EventItemAdded, placement.EventItemRemoved}
	if got := peer.eventNames(); !reflect.DeepEqual(got, wantPeer) {
		t.Fatalf("peer events: got %v, want %v", got, wantPeer)
	}
	for _, name := range sender.eventNames() {
		if name == placement.EventItemAdded || name == placement.EventItemRemoved {
			t.Fatalf("sender received echo of its own mutation: %v", sender.eventNames())
		}
	}
	for _, name := range outsider.eventNames() {
		if name == placement.EventItemAdded || name == placement.EventItemRemoved {
			t.Fatalf("mutation leaked into another room: %v", outsider.eventNames())
		}
	}
}

func TestClearDesignEmptiesRoomState(t *testing.T) {
	h := NewHub()
	sender := &fakeMember{id: "sender"}
	peer := &fakeMember{id: "peer"}
	h.Join(sender, "alley-1")
	h.Join(peer, "alley-1")

	h.AddItem(sender, placement.ItemPayload{AlleyID: "alley-1", Item: placement.Item{ID: "item-1", Width: 60, Height: 60}})
	h.AddItem(sender, placement.ItemPayload{AlleyID: "alley-1", Item: placement.Item{ID: "item-2", Width: 60, Height: 60}})
	h.ClearDesign(sender, placement.ClearPayload{AlleyID: "alley-1"})

	if items := h.RoomItems("alley-1"); len(items) != 0 {
		t.Fatalf("expected empty room after clear, got %d items", len(items))
	}
	if got := peer.lastEvent(t).name; got != placement.EventDesignCleared {
		t.Fatalf("expected design_cleared relayed to peer, got %q", got)
	}
}

func TestLeaveNotifiesRemainingMembers(t *testing.T) {
	h := NewHub()
	leaver := &fakeMember{id: "leaver"}
	peer := &fakeMember{id: "peer"}
	h.Join(leaver, "alley-1")
	h.Join(peer, "alley-1")

	h.Leave(leaver)

	if got := peer.lastEvent(t).name; got != placement.EventUserLeft {
		t.Fatalf("expected user_left, got %q", got)
	}

	// Room state survives everyone leaving.
	h.AddItem(peer, placement.ItemPayload{AlleyID: "alley-1", Item: placement.Item{ID: "item-1", Width: 60, Height: 60}})
	h.Leave(peer)
	if items := h.RoomItems("alley-1"); len(items) != 1 {
		t.Fatalf("expected room items to survive members leaving, got %d", len(items))
	}
}

func TestSwitchingRoomsLeavesTheOldOne(t *testing.T) {
	h := NewHub()
	mover := &fakeMember{id: "mover"}
	peer := &fakeMember{id: "peer"}
	h.Join(peer, "alley-1")
	h.Join(mover, "alley-1")

	h.Join(mover, "alley-2")

	// The old room hears the same user_left an explicit leave produces.
	if got := peer.lastEvent(t).name; got != placement.EventUserLeft {
		t.Fatalf("expected user_left in the old room on switch, got %q", got)
	}

	h.AddItem(peer, placement.ItemPayload{AlleyID: "alley-1", Item: placement.Item{ID: "item-1", Width: 60, Height: 60}})

	for _, name := range mover.eventNames() {
		if name == placement.EventItemAdded {
			t.Fatalf("member still receives events from the room it left")
		}
	}
}

func TestRejoiningSameRoomEmitsNoDeparture(t *testing.T) {
	h := NewHub()
	mover := &fakeMember{id: "mover"}
	peer := &fakeMember{id: "peer"}
	h.Join(peer, "alley-1")
	h.Join(mover, "alley-1")

	h.Join(mover, "alley-1")

	for _, name := range peer.eventNames() {
		if name == placement.EventUserLeft {
			t.Fatalf("rejoin of the same room must not announce a departure: %v", peer.eventNames())
		}
	}
}

func TestDispatchRoutesEnvelopes(t *testing.T) {
	h := NewHub()
	m := &fakeMember{id: "m"}

	join, _ := json.Marshal(placement.JoinPayload{AlleyID: "alley-1"})
	if err := h.Dispatch(m, placement.Envelope{Event: placement.EventJoinAlley, Data: join}); err != nil {
		t.Fatalf("dispatch join_alley: %v", err)
	}

	add, _ := json.Marshal(placement.ItemPayload{AlleyID: "alley-1", Item: placement.Item{ID: "item-1", Width: 60, Height: 60}})
	if err := h.Dispatch(m, placement.Envelope{Event: placement.EventAddItem, Data: add}); err != nil {
		t.Fatalf("dispatch add_item: %v", err)
	}
	if items := h.RoomItems("alley-1"); len(items) != 1 {
		t.Fatalf("expected 1 item after dispatched add, got %d", len(items))
	}

	if err := h.Dispatch(m, placement.Envelope{Event: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown event")
	}
}

func TestRoomItemsForUnknownAlleyIsEmpty(t *testing.T) {
	h := NewHub()
	if items := h.RoomItems("nowhere"); items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil snapshot, got %v", items)
	}
}
