package reactive

import (
	"context"
	"testing"
)

func TestPublishSignalsSubscribedTable(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("habits")
	defer sub.Close()

	bus.Publish("habits")

	select {
	case <-sub.C():
	default:
		t.Fatal("expected a signal after publishing to a subscribed table")
	}
}

func TestPublishIgnoresOtherTables(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("habits")
	defer sub.Close()

	bus.Publish("goals")

	select {
	case <-sub.C():
		t.Fatal("should not signal for an unrelated table")
	default:
	}
}

func TestPublishCoalesces(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("habits")
	defer sub.Close()

	bus.Publish("habits")
	bus.Publish("habits")
	bus.Publish("habits")

	// One pending signal, not three.
	<-sub.C()
	select {
	case <-sub.C():
		t.Fatal("rapid publishes should coalesce into one pending signal")
	default:
	}
}

func TestSetTablesRetargets(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("habits")
	defer sub.Close()

	sub.SetTables("goals")

	bus.Publish("habits")
	select {
	case <-sub.C():
		t.Fatal("should not signal for a table the subscription left")
	default:
	}

	bus.Publish("goals")
	select {
	case <-sub.C():
	default:
		t.Fatal("expected a signal for the new table")
	}
}

func TestCloseStopsSignals(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("habits")
	sub.Close()

	bus.Publish("habits")
	select {
	case <-sub.C():
		t.Fatal("closed subscription must not receive signals")
	default:
	}

	// Closing again is fine.
	sub.Close()
}

func TestPublishAllSignalsEverySubscription(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe("habits")
	defer a.Close()
	b := bus.Subscribe("goals")
	defer b.Close()

	bus.PublishAll()

	for name, sub := range map[string]*Subscription{"habits": a, "goals": b} {
		select {
		case <-sub.C():
		default:
			t.Errorf("subscription on %s missed PublishAll", name)
		}
	}
}

func TestVersionAdvancesOnPublish(t *testing.T) {
	bus := NewBus()
	v := bus.Version()
	bus.Publish("habits")
	if bus.Version() != v+1 {
		t.Errorf("Publish must advance the version counter, got %d from %d", bus.Version(), v)
	}
	bus.PublishAll()
	if bus.Version() != v+2 {
		t.Errorf("PublishAll must advance the version counter, got %d from %d", bus.Version(), v)
	}
}

func TestRecorderCollectsTouches(t *testing.T) {
	ctx, rec := WithRecorder(context.Background())

	Touch(ctx, "habits")
	Touch(ctx, "habit_logs", "habits")

	tables := rec.Tables()
	if len(tables) != 2 {
		t.Fatalf("expected 2 distinct tables, got %v", tables)
	}
}

func TestTouchWithoutRecorderIsNoop(t *testing.T) {
	// Must not panic.
	Touch(context.Background(), "habits")
}
