package placement

// ============================================================
// Placed Item Model
// ============================================================

// BlendMode задаёт режим наложения изображения элемента на фон.
type BlendMode string

const (
	BlendNormal    BlendMode = "normal"
	BlendMultiply  BlendMode = "multiply"
	BlendOverlay   BlendMode = "overlay"
	BlendScreen    BlendMode = "screen"
	BlendSoftLight BlendMode = "soft-light"
)

// ValidBlendMode reports whether mode is one of the supported compositing modes.
func ValidBlendMode(mode BlendMode) bool {
	switch mode {
	case BlendNormal, BlendMultiply, BlendOverlay, BlendScreen, BlendSoftLight:
		return true
	}
	return false
}

// MinItemSize is the floor for item width and height in canvas pixels.
// Resize never emits geometry below this bound.
const MinItemSize = 50

// DefaultItemSize is used when a caller gives no explicit size and no
// template size is known for the type/subtype pair.
const DefaultItemSize = 200

// templateSizes holds the default canvas footprint of every palette
// template, keyed "type/subtype". Pairs not listed here fall back to the
// DefaultItemSize square.
var templateSizes = map[string][2]float64{
	"art/mural-1":   {400, 300},
	"art/mural-2":   {400, 300},
	"art/mural-3":   {400, 300},
	"art/mural-4":   {400, 300},
	"art/mural-5":   {400, 300},
	"art/mural-6":   {400, 300},
	"art/sculpture": {100, 150},
	"art/graffiti":  {120, 180},

	"plant/tree":            {120, 180},
	"plant/flowers":         {80, 100},
	"plant/vertical-garden": {100, 200},
	"plant/shrubs":          {90, 90},
	"plant/vines":           {80, 150},

	"furniture/bench":     {120, 80},
	"furniture/lights":    {200, 50},
	"furniture/bike-rack": {100, 80},
}

// TemplateSize returns the default width and height for a type/subtype
// pair, falling back to DefaultItemSize for unknown pairs.
func TemplateSize(itemType, subtype string) (width, height float64) {
	if size, ok := templateSizes[itemType+"/"+subtype]; ok {
		return size[0], size[1]
	}
	return DefaultItemSize, DefaultItemSize
}

// Item is one positioned design object (mural, plant, furniture) on the
// 2D canvas. Type and Subtype are opaque template tags; the core never
// interprets them. JSON tags match the wire payloads exchanged with the
// room broadcaster.
type Item struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Subtype     string    `json:"subtype"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	ZIndex      int       `json:"zIndex"`
	Rotation    float64   `json:"rotation,omitempty"`
	BlendMode   BlendMode `json:"blendMode,omitempty"`
	Opacity     int       `json:"opacity,omitempty"`
	CustomImage string    `json:"customImage,omitempty"`
}

// ============================================================
// Item Set
// ============================================================

// ItemSet is an ordered collection of placed items with replace-by-id
// semantics. It is not synchronized; the owner is responsible for
// locking when shared across goroutines.
type ItemSet struct {
	items []Item
}

// NewItemSet returns an empty set.
func NewItemSet() *ItemSet {
	return &ItemSet{}
}

func (s *ItemSet) Len() int {
	return len(s.items)
}

// Append adds an item at the end of the order.
func (s *ItemSet) Append(item Item) {
	s.items = append(s.items, item)
}

// Replace swaps the item with the same id for the given one, keeping its
// position in the order. The whole record is replaced, not patched.
// Returns false when no item with that id exists.
func (s *ItemSet) Replace(item Item) bool {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			return true
		}
	}
	return false
}

// Remove deletes the item with the given id. Returns false when absent.
func (s *ItemSet) Remove(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the item with the given id.
func (s *ItemSet) Get(id string) (Item, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return Item{}, false
}

// Clear drops every item.
func (s *ItemSet) Clear() {
	s.items = nil
}

// ReplaceAll swaps the whole collection wholesale, as on load_design.
func (s *ItemSet) ReplaceAll(items []Item) {
	s.items = append([]Item(nil), items...)
}

// Snapshot returns a copy of the ordered items.
func (s *ItemSet) Snapshot() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}
