package buffer

import (
	"errors"
	"testing"
)

func mustNew(t *testing.T, channels, steps, maxChannels int) *Grid {
	t.Helper()
	g, err := New(channels, steps, maxChannels)
	if err != nil {
		t.Fatalf("New(%d, %d, %d) error = %v", channels, steps, maxChannels, err)
	}
	return g
}

func fillIndexed(g *Grid) {
	g.Fill(func(ch, step int) uint8 {
		return uint8((ch + step) % 2)
	})
}

func TestNewZeroFilled(t *testing.T) {
	g := mustNew(t, 4, 8, 16)
	if g.Channels() != 4 || g.Steps() != 8 {
		t.Fatalf("shape = %dx%d, want 4x8", g.Channels(), g.Steps())
	}
	if g.Len() != 32 {
		t.Fatalf("Len() = %d, want 32", g.Len())
	}
	if g.Ones() != 0 {
		t.Fatalf("Ones() = %d, want 0", g.Ones())
	}
}

func TestNewClampsChannels(t *testing.T) {
	g := mustNew(t, 40, 8, 32)
	if g.Channels() != 32 {
		t.Fatalf("Channels() = %d, want 32", g.Channels())
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name                      string
		channels, steps, maxChans int
	}{
		{"zero channels", 0, 8, 16},
		{"zero steps", 4, 0, 16},
		{"negative steps", 4, -2, 16},
		{"zero ceiling", 4, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.channels, tt.steps, tt.maxChans)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("New() error = %v, want ErrInvalidDimension", err)
			}
		})
	}
}

func TestSetNormalizesAndIgnoresOutOfRange(t *testing.T) {
	g := mustNew(t, 2, 4, 8)
	g.Set(0, 1, 7)
	g.Set(1, 3, -1)
	g.Set(1, 2, 0)
	g.Set(2, 0, 1)
	g.Set(0, 4, 1)
	g.Set(-1, 0, 1)

	if g.Get(0, 1) != 1 || g.Get(1, 3) != 1 || g.Get(1, 2) != 0 {
		t.Fatalf("unexpected cells: %v", g.Rows())
	}
	if g.Ones() != 2 {
		t.Fatalf("Ones() = %d, want 2", g.Ones())
	}
}

func TestGetOutOfRange(t *testing.T) {
	g := mustNew(t, 1, 1, 8)
	g.Set(0, 0, 1)
	if g.Get(5, 5) != 0 {
		t.Fatal("out-of-range Get must read 0")
	}
	if _, ok := g.Lookup(5, 5); ok {
		t.Fatal("Lookup must report out-of-range coordinates")
	}
	if v, ok := g.Lookup(0, 0); !ok || v != 1 {
		t.Fatalf("Lookup(0, 0) = %d, %v; want 1, true", v, ok)
	}
}

func TestClear(t *testing.T) {
	g := mustNew(t, 4, 8, 16)
	fillIndexed(g)
	g.Clear()
	for ch := 0; ch < g.Channels(); ch++ {
		for s := 0; s < g.Steps(); s++ {
			if g.Get(ch, s) != 0 {
				t.Fatalf("cell (%d, %d) = 1 after Clear", ch, s)
			}
		}
	}
	if g.Channels() != 4 || g.Steps() != 8 {
		t.Fatal("Clear must not change the shape")
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	g := mustNew(t, 4, 8, 16)
	fillIndexed(g)
	orig := g.Copy()

	if err := g.Resize(2, 12); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	for ch := 0; ch < 2; ch++ {
		for s := 0; s < 12; s++ {
			want := uint8(0)
			if s < 8 {
				want = orig.Get(ch, s)
			}
			if got := g.Get(ch, s); got != want {
				t.Fatalf("cell (%d, %d) = %d, want %d", ch, s, got, want)
			}
		}
	}
}

func TestResizeRoundTrip(t *testing.T) {
	g := mustNew(t, 4, 8, 16)
	fillIndexed(g)
	orig := g.Copy()

	shapes := [][2]int{{6, 10}, {16, 32}, {4, 8}}
	for _, sh := range shapes {
		if err := g.Resize(sh[0], sh[1]); err != nil {
			t.Fatalf("Resize(%d, %d) error = %v", sh[0], sh[1], err)
		}
	}
	if !g.Equal(orig) {
		t.Fatalf("round trip lost data: got %v, want %v", g.Rows(), orig.Rows())
	}
}

func TestResizeShrinkLosesData(t *testing.T) {
	g := mustNew(t, 4, 8, 16)
	g.Set(3, 7, 1)
	if err := g.Resize(2, 4); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if err := g.Resize(4, 8); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if g.Get(3, 7) != 0 {
		t.Fatal("cell outside the shrunken rectangle must be lost")
	}
}

func TestResizeClampsAndRejects(t *testing.T) {
	g := mustNew(t, 4, 8, 8)
	if err := g.Resize(20, 8); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if g.Channels() != 8 {
		t.Fatalf("Channels() = %d, want 8", g.Channels())
	}
	if err := g.Resize(0, 8); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Resize(0, 8) error = %v, want ErrInvalidDimension", err)
	}
	if g.Channels() != 8 || g.Steps() != 8 {
		t.Fatal("failed Resize must not change the shape")
	}
}

func TestSetMaxChannelsTruncates(t *testing.T) {
	g := mustNew(t, 16, 4, 16)
	g.Set(3, 0, 1)
	g.Set(12, 0, 1)
	if err := g.SetMaxChannels(8); err != nil {
		t.Fatalf("SetMaxChannels() error = %v", err)
	}
	if g.Channels() != 8 || g.MaxChannels() != 8 {
		t.Fatalf("shape = %d/%d, want 8/8", g.Channels(), g.MaxChannels())
	}
	if g.Get(3, 0) != 1 {
		t.Fatal("surviving channel lost data")
	}
	if err := g.SetMaxChannels(32); err != nil {
		t.Fatalf("SetMaxChannels() error = %v", err)
	}
	if g.Channels() != 8 {
		t.Fatal("raising the ceiling must not add channels")
	}
	if err := g.SetMaxChannels(0); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetMaxChannels(0) error = %v, want ErrInvalidDimension", err)
	}
}

func TestRandomizeDeterministic(t *testing.T) {
	a := mustNew(t, 32, 32, 32)
	b := mustNew(t, 32, 32, 32)
	a.Randomize(42)
	b.Randomize(42)
	if !a.Equal(b) {
		t.Fatal("same seed must reproduce the same grid")
	}

	c := mustNew(t, 32, 32, 32)
	c.Randomize(43)
	if a.Equal(c) {
		t.Fatal("different seeds produced identical grids")
	}
}

func TestRandomizeDistribution(t *testing.T) {
	g := mustNew(t, 32, 32, 32)
	g.Randomize(7)
	ones := g.Ones()
	// 1024 fair bits: mean 512, sigma 16.
	if ones < 384 || ones > 640 {
		t.Fatalf("Ones() = %d, want roughly half of 1024", ones)
	}
	for _, row := range g.Rows() {
		for _, v := range row {
			if v > 1 {
				t.Fatalf("non-binary cell %d", v)
			}
		}
	}
}

func TestBroadcast(t *testing.T) {
	g := mustNew(t, 3, 4, 8)
	if err := g.Broadcast([]uint8{1, 0, 2, 0}); err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	for ch := 0; ch < 3; ch++ {
		got := g.Channel(ch)
		want := []uint8{1, 0, 1, 0}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("channel %d = %v, want %v", ch, got, want)
			}
		}
	}
	if err := g.Broadcast([]uint8{1}); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Broadcast() error = %v, want ErrInvalidDimension", err)
	}
}

func TestChannelIsCopy(t *testing.T) {
	g := mustNew(t, 2, 2, 8)
	row := g.Channel(0)
	row[0] = 1
	if g.Get(0, 0) != 0 {
		t.Fatal("Channel should not share memory")
	}
	if g.Channel(2) != nil {
		t.Fatal("Channel out of range should be nil")
	}
}

func TestCopyIsDeep(t *testing.T) {
	g := mustNew(t, 2, 2, 8)
	c := g.Copy()
	c.Set(1, 1, 1)
	if g.Get(1, 1) != 0 {
		t.Fatal("Copy should not share memory")
	}
	if g.Equal(c) {
		t.Fatal("Equal should see the difference")
	}
	if g.Equal(nil) {
		t.Fatal("Equal(nil) must be false")
	}
}
