package session

import (
	"fmt"
	"sync"
	"testing"
)

func TestActiveModelUnsetByDefault(t *testing.T) {
	s := &Session{}

	model, ok := s.ActiveModel()
	if ok || model != "" {
		t.Errorf("expected no active model, got %q (ok=%v)", model, ok)
	}
}

func TestSetActiveModelOverwrites(t *testing.T) {
	s := &Session{}

	s.SetActiveModel("llama3.2:1b")
	if model, ok := s.ActiveModel(); !ok || model != "llama3.2:1b" {
		t.Errorf("expected llama3.2:1b, got %q (ok=%v)", model, ok)
	}

	s.SetActiveModel("mistral")
	if model, _ := s.ActiveModel(); model != "mistral" {
		t.Errorf("expected overwrite to mistral, got %q", model)
	}
}

func TestStateTransitions(t *testing.T) {
	s := &Session{}

	if s.State() != StateIdle {
		t.Error("new session should be idle")
	}

	s.SetState(StateAwaitingModel)
	if s.State() != StateAwaitingModel {
		t.Error("expected awaiting state")
	}

	s.SetState(StateIdle)
	if s.State() != StateIdle {
		t.Error("expected idle after reset")
	}
}

func TestStoreGetCreatesSession(t *testing.T) {
	store := NewStore()

	sess1 := store.Get(123)
	if sess1 == nil {
		t.Fatal("Get should create new session")
	}

	// same ID should return same session
	sess2 := store.Get(123)
	if sess1 != sess2 {
		t.Error("Get should return same session for same ID")
	}
}

func TestStoreDistinctUsersDoNotInterfere(t *testing.T) {
	store := NewStore()

	store.Get(111).SetActiveModel("phi3")
	store.Get(222).SetActiveModel("gemma")

	if model, _ := store.Get(111).ActiveModel(); model != "phi3" {
		t.Errorf("user 111 selection corrupted: %q", model)
	}

	if model, _ := store.Get(222).ActiveModel(); model != "gemma" {
		t.Errorf("user 222 selection corrupted: %q", model)
	}
}

func TestStoreConcurrentGet(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	sessions := make(chan *Session, 100)

	// concurrent gets for same user
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions <- store.Get(42)
		}()
	}

	wg.Wait()
	close(sessions)

	// all should be the same session
	var first *Session
	for sess := range sessions {
		if first == nil {
			first = sess
		} else if sess != first {
			t.Error("concurrent Get returned different sessions for same ID")
		}
	}
}

func TestStoreConcurrentWrites(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	// concurrent writes across many users; last writer wins per user
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Get(int64(n % 10)).SetActiveModel(fmt.Sprintf("model-%d", n))
		}(i)
	}

	wg.Wait()

	for id := int64(0); id < 10; id++ {
		if _, ok := store.Get(id).ActiveModel(); !ok {
			t.Errorf("user %d lost its selection", id)
		}
	}
}
