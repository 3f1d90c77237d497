package scheduler

import "testing"

func TestScheduleRunsAfterDelay(t *testing.T) {
	d := NewDeferred()
	fired := 0
	d.Schedule("flash", 0.1, func() { fired++ })

	d.Advance(0.05)
	if fired != 0 {
		t.Fatalf("callback fired too early")
	}
	d.Advance(0.05)
	if fired != 1 {
		t.Fatalf("expected callback to fire once, got %d", fired)
	}
	d.Advance(1)
	if fired != 1 {
		t.Errorf("callback must be one-shot, fired %d times", fired)
	}
	if d.Len() != 0 {
		t.Errorf("expected no pending tasks, got %d", d.Len())
	}
}

func TestSameCategorySupersedes(t *testing.T) {
	d := NewDeferred()
	var got []string
	d.Schedule("message", 1, func() { got = append(got, "first") })
	d.Advance(0.5)
	d.Schedule("message", 1, func() { got = append(got, "second") })

	d.Advance(0.6)
	if len(got) != 0 {
		t.Fatalf("superseded callback must not fire, got %v", got)
	}
	d.Advance(0.5)
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("expected only second callback, got %v", got)
	}
}

func TestDifferentCategoriesAreIndependent(t *testing.T) {
	d := NewDeferred()
	count := 0
	d.Schedule("flash:1", 0.1, func() { count++ })
	d.Schedule("flash:2", 0.1, func() { count++ })
	d.Advance(0.2)
	if count != 2 {
		t.Errorf("expected both callbacks, got %d", count)
	}
}

func TestHandleCancel(t *testing.T) {
	d := NewDeferred()
	fired := false
	h := d.Schedule("buff-hud", 1, func() { fired = true })
	if !h.Pending() {
		t.Fatal("handle should be pending")
	}
	h.Cancel()
	if h.Pending() || d.Pending("buff-hud") {
		t.Fatal("handle should no longer be pending")
	}
	d.Advance(2)
	if fired {
		t.Error("cancelled callback fired")
	}

	// 再次取消无副作用
	h.Cancel()
	var zero Handle
	zero.Cancel()
}

func TestStaleHandleDoesNotCancelReplacement(t *testing.T) {
	d := NewDeferred()
	fired := ""
	old := d.Schedule("fart-pose", 1, func() { fired = "old" })
	d.Schedule("fart-pose", 1, func() { fired = "new" })

	old.Cancel()
	d.Advance(1)
	if fired != "new" {
		t.Errorf("expected replacement to fire, got %q", fired)
	}
}

func TestAdvanceOrdersByDueTime(t *testing.T) {
	d := NewDeferred()
	var order []int
	d.Schedule("", 0.3, func() { order = append(order, 3) })
	d.Schedule("", 0.1, func() { order = append(order, 1) })
	d.Schedule("", 0.2, func() { order = append(order, 2) })
	d.Advance(1)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("unexpected order %v", order)
	}
}

func TestCallbackSchedulingDuringAdvance(t *testing.T) {
	d := NewDeferred()
	second := false
	d.Schedule("wave-intro", 0.1, func() {
		d.Schedule("message", 0, func() { second = true })
	})
	d.Advance(0.1)
	if second {
		t.Fatal("callback scheduled during Advance must wait for the next Advance")
	}
	d.Advance(0)
	if !second {
		t.Error("nested callback did not fire")
	}
}

func TestCallbackCancelsLaterCallback(t *testing.T) {
	d := NewDeferred()
	var later Handle
	fired := false
	d.Schedule("a", 0.1, func() { later.Cancel() })
	later = d.Schedule("b", 0.2, func() { fired = true })
	d.Advance(0.5)
	if fired {
		t.Error("callback cancelled by an earlier callback in the same Advance fired")
	}
}

func TestClear(t *testing.T) {
	d := NewDeferred()
	fired := false
	d.Schedule("x", 0.1, func() { fired = true })
	d.Schedule("", 0.1, func() { fired = true })
	d.Clear()
	d.Advance(1)
	if fired || d.Len() != 0 {
		t.Error("Clear should drop all callbacks")
	}
}

func TestRescheduleInsideSameFrame(t *testing.T) {
	d := NewDeferred()
	message := "old"
	d.Schedule("message", 1.0, func() { message = "" })
	d.Schedule("intro", 0.9, func() {
		message = "new"
		d.Schedule("message", 2.0, func() { message = "" })
	})

	d.Advance(0.8)
	d.Advance(0.25)
	if message != "new" {
		t.Fatalf("message after advance = %q, want %q", message, "new")
	}
	if !d.Pending("message") {
		t.Error("rescheduled hide callback should still be pending")
	}

	d.Advance(2.0)
	if message != "" {
		t.Errorf("message = %q, rescheduled hide should have fired", message)
	}
}
