package wizard

import "github.com/mark3labs/txcompanion/internal/model"

// Input is a logical vehicle control before it is bound to a channel.
type Input int

const (
	InputNone Input = iota
	InputRudder
	InputElevator
	InputThrottle
	InputAilerons
	InputFlaps
	InputAirbrakes
	InputThrottleCut
)

// String returns the short name used in the summary.
func (i Input) String() string {
	switch i {
	case InputThrottle:
		return "THR"
	case InputRudder:
		return "RUD"
	case InputElevator:
		return "ELE"
	case InputAilerons:
		return "AIL"
	case InputFlaps:
		return "FLP"
	case InputAirbrakes:
		return "AIR"
	case InputThrottleCut:
		return "CUT"
	default:
		return "---"
	}
}

// Stick returns the stick index (rudder=0 .. ailerons=3) for the stick
// driven inputs, or -1.
func (i Input) Stick() int {
	if i >= InputRudder && i <= InputAilerons {
		return int(i) - 1
	}
	return -1
}

// Contribution is one weighted input carried by a channel slot.
type Contribution struct {
	Input  Input
	Weight int
	Switch model.Switch
}

// Slot is the booking state of one output channel.
type Slot struct {
	Page      PageID
	Prebooked bool
	Primary   Contribution
	Secondary Contribution
}

// Free reports whether no page owns the slot.
func (s Slot) Free() bool { return s.Page == PageNone }

func (s *Slot) clear() {
	*s = Slot{Page: PageNone}
}

// ChannelBook tracks which wizard page owns each output channel.
type ChannelBook struct {
	slots []Slot
}

// NewChannelBook returns a book of n free channels.
func NewChannelBook(n int) *ChannelBook {
	b := &ChannelBook{slots: make([]Slot, n)}
	for i := range b.slots {
		b.slots[i].clear()
	}
	return b
}

// Len returns the number of channels.
func (b *ChannelBook) Len() int { return len(b.slots) }

// Slot returns a copy of slot i.
func (b *ChannelBook) Slot(i int) Slot { return b.slots[i] }

// NextFree returns the lowest free channel >= start, or -1.
func (b *ChannelBook) NextFree(start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(b.slots); i++ {
		if b.slots[i].Free() {
			return i
		}
	}
	return -1
}

// CountFree returns the number of channels no page owns.
func (b *ChannelBook) CountFree() int {
	n := 0
	for _, s := range b.slots {
		if s.Free() {
			n++
		}
	}
	return n
}

// Prebook marks channel i as provisionally proposed on the active page.
// Ownership is unchanged.
func (b *ChannelBook) Prebook(i int) {
	if i >= 0 && i < len(b.slots) {
		b.slots[i].Prebooked = true
	}
}

// Prebooked reports whether channel i is provisionally proposed.
func (b *ChannelBook) Prebooked(i int) bool {
	return i >= 0 && i < len(b.slots) && b.slots[i].Prebooked
}

// ReleasePrebookings clears every provisional mark.
func (b *ChannelBook) ReleasePrebookings() {
	for i := range b.slots {
		b.slots[i].Prebooked = false
	}
}

// Book assigns channel i to page with the given payload. It fails without
// mutating anything when i is out of range, the slot is already owned, or a
// weight lies outside [-100, 100].
func (b *ChannelBook) Book(i int, page PageID, primary, secondary Contribution) bool {
	if i < 0 || i >= len(b.slots) || page == PageNone {
		return false
	}
	if !b.slots[i].Free() {
		return false
	}
	if !validWeight(primary.Weight) || !validWeight(secondary.Weight) {
		return false
	}
	b.slots[i].Page = page
	b.slots[i].Primary = primary
	b.slots[i].Secondary = secondary
	return true
}

func validWeight(w int) bool { return w >= -100 && w <= 100 }

// Release frees every channel owned by page.
func (b *ChannelBook) Release(page PageID) {
	for i := range b.slots {
		if b.slots[i].Page == page {
			prebooked := b.slots[i].Prebooked
			b.slots[i].clear()
			b.slots[i].Prebooked = prebooked
		}
	}
}

// OwnedBy returns the channels owned by page in index order.
func (b *ChannelBook) OwnedBy(page PageID) []int {
	var out []int
	for i, s := range b.slots {
		if s.Page == page {
			out = append(out, i)
		}
	}
	return out
}
