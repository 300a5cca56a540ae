package events

import (
	"testing"
	"time"
)

func TestEmitDeliversChangeToHandlers(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	got := make(chan Change, 1)
	bus.On("clients.created", func(data interface{}) {
		if change, ok := data.(Change); ok {
			got <- change
		}
	})

	bus.Emit("clients.created", Change{
		Resource:   "clients",
		Action:     "created",
		ResourceID: "c1",
		ActorEmail: "admin@example.com",
	})

	select {
	case change := <-got:
		if change.ResourceID != "c1" || change.ActorEmail != "admin@example.com" {
			t.Errorf("change = %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestEmitSurvivesPanickingHandler(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	ok := make(chan struct{}, 1)
	bus.On("x", func(interface{}) { panic("handler bug") })
	bus.On("x", func(interface{}) { ok <- struct{}{} })

	bus.Emit("x", nil)

	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("second handler never ran after sibling panicked")
	}
}

func TestEmitWithoutHandlersIsANoop(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	bus.Emit("nobody.listens", Change{})
}
