package wizard

import (
	"testing"

	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/stretchr/testify/require"
)

func contrib(in Input, w int) Contribution {
	return Contribution{Input: in, Weight: w}
}

func TestChannelBook_NonOverlappingBookingsSucceed(t *testing.T) {
	b := NewChannelBook(8)
	pages := []PageID{PageThrottle, PageAilerons, PageAilerons, PageTail, PageTail, PageFlaps, PageAirbrakes, PageRudder}
	for i, p := range pages {
		require.True(t, b.Book(i, p, contrib(InputRudder, 100), Contribution{}), "channel %d", i)
	}
	require.Equal(t, 0, b.CountFree())
	require.Equal(t, -1, b.NextFree(0))
}

func TestChannelBook_SecondOwnerFails(t *testing.T) {
	b := NewChannelBook(8)
	require.True(t, b.Book(2, PageThrottle, contrib(InputThrottle, 100), Contribution{}))

	before := b.Slot(2)
	require.False(t, b.Book(2, PageTail, contrib(InputElevator, 100), Contribution{}))
	require.Equal(t, before, b.Slot(2), "failed booking must not mutate")

	// the same page cannot claim one channel twice either
	require.False(t, b.Book(2, PageThrottle, contrib(InputThrottle, 50), Contribution{}))
}

func TestChannelBook_ReleaseThenRebook(t *testing.T) {
	b := NewChannelBook(8)
	require.True(t, b.Book(0, PageTail, contrib(InputElevator, 100), Contribution{}))
	require.True(t, b.Book(1, PageTail, contrib(InputRudder, 100), Contribution{}))
	require.True(t, b.Book(2, PageThrottle, contrib(InputThrottle, 100), Contribution{}))

	b.Release(PageTail)
	require.True(t, b.Slot(0).Free())
	require.Equal(t, Contribution{}, b.Slot(0).Primary)
	require.False(t, b.Slot(2).Free(), "other pages keep their bookings")

	require.True(t, b.Book(0, PageVtail, contrib(InputElevator, 50), contrib(InputRudder, 50)))
	require.Equal(t, PageVtail, b.Slot(0).Page)
	require.Equal(t, []int{0}, b.OwnedBy(PageVtail))
}

func TestChannelBook_RejectsInvalidBookings(t *testing.T) {
	b := NewChannelBook(4)
	require.False(t, b.Book(-1, PageTail, contrib(InputElevator, 100), Contribution{}))
	require.False(t, b.Book(4, PageTail, contrib(InputElevator, 100), Contribution{}))
	require.False(t, b.Book(0, PageNone, contrib(InputElevator, 100), Contribution{}))
	require.False(t, b.Book(0, PageTail, contrib(InputElevator, 101), Contribution{}))
	require.False(t, b.Book(0, PageTail, contrib(InputElevator, 100), contrib(InputRudder, -101)))
	require.Equal(t, 4, b.CountFree())
}

func TestChannelBook_NextFreeAndCount(t *testing.T) {
	b := NewChannelBook(8)
	require.Equal(t, 0, b.NextFree(0))
	require.Equal(t, 4, b.NextFree(4))
	require.Equal(t, 0, b.NextFree(-3))
	require.Equal(t, -1, b.NextFree(8))

	b.Book(4, PageFlaps, Contribution{Input: InputFlaps, Weight: 100, Switch: model.Switch{Name: "SA", Position: 0}}, Contribution{})
	b.Book(5, PageFlaps, contrib(InputFlaps, 100), Contribution{})
	require.Equal(t, 6, b.NextFree(4))
	require.Equal(t, 6, b.CountFree())
}

func TestChannelBook_Prebooking(t *testing.T) {
	b := NewChannelBook(8)
	b.Prebook(3)
	b.Prebook(9) // out of range is ignored
	require.True(t, b.Prebooked(3))
	require.True(t, b.Slot(3).Free(), "prebooking does not take ownership")
	require.Equal(t, 8, b.CountFree())

	b.ReleasePrebookings()
	require.False(t, b.Prebooked(3))
}
