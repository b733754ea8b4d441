package buffer

import (
	"errors"
	"testing"
)

func TestPoolGetReturnsZeroed(t *testing.T) {
	p := NewPool()

	g, err := p.Get(4, 8, 16)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if g.Channels() != 4 || g.Steps() != 8 || g.MaxChannels() != 16 {
		t.Fatalf("shape = %dx%d/%d, want 4x8/16", g.Channels(), g.Steps(), g.MaxChannels())
	}
	if g.Ones() != 0 {
		t.Fatalf("Ones() = %d, want 0", g.Ones())
	}

	p.Put(g)
}

func TestPoolReuseIsZeroed(t *testing.T) {
	p := NewPool()

	g, err := p.Get(4, 4, 8)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	g.Set(0, 0, 1)
	g.Set(3, 3, 1)
	p.Put(g)

	g2, err := p.Get(2, 4, 8)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if g2.Ones() != 0 {
		t.Fatalf("reused grid has %d set cells, want 0", g2.Ones())
	}

	p.Put(g2)
}

func TestPoolGetInvalid(t *testing.T) {
	p := NewPool()
	if _, err := p.Get(0, 4, 8); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Get() error = %v, want ErrInvalidDimension", err)
	}
	if _, err := p.Get(1, 4, 0); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Get() error = %v, want ErrInvalidDimension", err)
	}
}

func TestPoolPutNilSafe(_ *testing.T) {
	p := NewPool()
	p.Put(nil) // must not panic
}
