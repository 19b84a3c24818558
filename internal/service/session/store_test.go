package session

import (
	"sync"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	if store.Has("628111") {
		t.Fatal("fresh store should have no sessions")
	}
	if _, ok := store.Get("628111"); ok {
		t.Fatal("Get on fresh store returned a session")
	}

	store.Put("628111", "wypall", 0)
	sess, ok := store.Get("628111")
	if !ok || sess.LastKeyword != "wypall" || sess.Page != 0 {
		t.Fatalf("unexpected session %+v ok=%v", sess, ok)
	}

	// A new lookup overwrites the previous state.
	store.Put("628111", "filter", 2)
	sess, _ = store.Get("628111")
	if sess.LastKeyword != "filter" || sess.Page != 2 {
		t.Fatalf("session not overwritten: %+v", sess)
	}

	// Other senders are unaffected.
	if store.Has("628222") {
		t.Error("unrelated sender gained a session")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			store.Put("sender", "keyword", n)
		}(i)
		go func() {
			defer wg.Done()
			store.Get("sender")
			store.Has("sender")
		}()
	}
	wg.Wait()

	sess, ok := store.Get("sender")
	if !ok || sess.LastKeyword != "keyword" {
		t.Fatalf("session corrupted after concurrent access: %+v ok=%v", sess, ok)
	}
}
