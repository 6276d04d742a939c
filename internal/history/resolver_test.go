package history

import (
	"strings"
	"testing"
)

func seedConversations(t *testing.T) (*Store, []*Conversation) {
	t.Helper()
	store := newTestStore(t)

	a, _ := store.CreateConversation("fast")
	store.UpdateTitle(a.ID, "rust questions")
	b, _ := store.CreateConversation("fast")
	store.UpdateTitle(b.ID, "dinner ideas")
	c, _ := store.CreateConversation("fast")
	store.UpdateTitle(c.ID, "more rust questions")

	// Most recent first: c, b, a (UpdateTitle bumps UpdatedAt in order)
	return store, []*Conversation{a, b, c}
}

func TestResolveAliases(t *testing.T) {
	store, convs := seedConversations(t)
	r := NewResolver(store)

	if id, err := r.Resolve("@last"); err != nil || id != convs[2].ID {
		t.Errorf("Resolve(@last) = %q, %v; want %q", id, err, convs[2].ID)
	}
	if id, err := r.Resolve("@first"); err != nil || id != convs[0].ID {
		t.Errorf("Resolve(@first) = %q, %v; want %q", id, err, convs[0].ID)
	}
}

func TestResolveIndex(t *testing.T) {
	store, convs := seedConversations(t)
	r := NewResolver(store)

	if id, err := r.Resolve("1"); err != nil || id != convs[2].ID {
		t.Errorf("Resolve(1) = %q, %v", id, err)
	}
	if id, err := r.Resolve("3"); err != nil || id != convs[0].ID {
		t.Errorf("Resolve(3) = %q, %v", id, err)
	}
	if _, err := r.Resolve("4"); err == nil {
		t.Error("Resolve(4) should be out of range")
	}
	if _, err := r.Resolve("0"); err == nil {
		t.Error("Resolve(0) should be out of range")
	}
}

func TestResolveTitleSubstring(t *testing.T) {
	store, convs := seedConversations(t)
	r := NewResolver(store)

	if id, err := r.Resolve("dinner"); err != nil || id != convs[1].ID {
		t.Errorf("Resolve(dinner) = %q, %v", id, err)
	}

	// Ambiguous substring must not guess
	if _, err := r.Resolve("rust"); err == nil || !strings.Contains(err.Error(), "multiple") {
		t.Errorf("Resolve(rust) = %v, want ambiguity error", err)
	}

	if _, err := r.Resolve("nothing here"); err == nil {
		t.Error("Resolve() with no match should fail")
	}
}

func TestResolveDirectID(t *testing.T) {
	store, convs := seedConversations(t)
	r := NewResolver(store)

	if id, err := r.Resolve(convs[1].ID); err != nil || id != convs[1].ID {
		t.Errorf("Resolve(direct id) = %q, %v", id, err)
	}
	if _, err := r.Resolve("conv-doesnotexist"); err == nil {
		t.Error("Resolve() with unknown id should fail")
	}
}

func TestResolveEmptyStore(t *testing.T) {
	r := NewResolver(newTestStore(t))
	if _, err := r.Resolve("@last"); err == nil {
		t.Error("Resolve() on empty store should fail")
	}
}
