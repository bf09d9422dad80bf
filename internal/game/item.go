package game

import "strings"

const (
	// InventorySize is the number of storage slots in a player inventory.
	InventorySize = 36
	// ArmorSize is the number of armor slots (boots, leggings, chestplate, helmet).
	ArmorSize = 4
	// NavigatorSlot is the hotbar slot the navigator item is kept in.
	NavigatorSlot = 8
)

// Item is a stack of a single material. The zero value is an empty slot.
type Item struct {
	Material string `json:"material,omitempty"`
	Name     string `json:"name,omitempty"`
	Amount   int    `json:"amount,omitempty"`
}

// NewItem creates a single item of the given material with a display name.
func NewItem(material, name string) Item {
	return Item{Material: strings.ToUpper(material), Name: name, Amount: 1}
}

// IsEmpty returns true if the slot holds nothing.
func (i Item) IsEmpty() bool {
	return i.Material == "" || i.Amount <= 0
}

// Contents is an ordered set of inventory slots.
type Contents []Item

// NewContents returns size empty slots.
func NewContents(size int) Contents {
	return make(Contents, size)
}

// Clone returns a copy that does not share backing storage.
func (c Contents) Clone() Contents {
	if c == nil {
		return nil
	}
	out := make(Contents, len(c))
	copy(out, c)
	return out
}

// Empty returns true if every slot is empty.
func (c Contents) Empty() bool {
	for _, it := range c {
		if !it.IsEmpty() {
			return false
		}
	}
	return true
}
