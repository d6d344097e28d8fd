package session_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mcpgate/mcpgate/internal/session"
)

func TestStoreReturnsSameSessionForSameID(t *testing.T) {
	store := session.NewStore()

	first := store.GetOrCreate("abc")
	second := store.GetOrCreate("abc")

	if first != second {
		t.Error("same id returned distinct sessions")
	}
	if store.Len() != 1 {
		t.Errorf("got %d sessions, want 1", store.Len())
	}
}

func TestStoreAllocatesFreshSessionForEmptyID(t *testing.T) {
	store := session.NewStore()

	a := store.GetOrCreate("")
	b := store.GetOrCreate("")

	if a == b {
		t.Error("empty ids shared a session")
	}
	if a.ID() == "" || b.ID() == "" {
		t.Error("generated session id is empty")
	}
	if a.ID() == b.ID() {
		t.Error("generated session ids collide")
	}
}

func TestSessionStateRoundTrip(t *testing.T) {
	store := session.NewStore()
	sess := store.GetOrCreate("abc")

	if _, ok := sess.Get("k"); ok {
		t.Error("fresh session has state")
	}
	sess.Set("k", 42)
	v, ok := sess.Get("k")
	if !ok || v != 42 {
		t.Errorf("got %v (%t), want 42", v, ok)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := session.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := store.GetOrCreate("shared")
			sess.Set(fmt.Sprintf("k%d", i), i)
			store.GetOrCreate(fmt.Sprintf("own-%d", i))
		}(i)
	}
	wg.Wait()

	if store.Len() != 17 {
		t.Errorf("got %d sessions, want 17", store.Len())
	}
	sess := store.GetOrCreate("shared")
	for i := 0; i < 16; i++ {
		if _, ok := sess.Get(fmt.Sprintf("k%d", i)); !ok {
			t.Errorf("missing key k%d", i)
		}
	}
}
