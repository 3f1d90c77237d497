package event

import "testing"

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func TestDispatchToSubscribers(t *testing.T) {
	d := NewDispatcher()
	a := &recorder{}
	b := &recorder{}
	d.Subscribe(EventHealth, a)
	d.Subscribe(EventHealth, b)
	d.Subscribe(EventWave, b)

	d.Emit(EventHealth, HealthPayload{Percent: 80})
	d.Emit(EventWave, WavePayload{Wave: 2})

	if len(a.events) != 1 {
		t.Fatalf("a: expected 1 event, got %d", len(a.events))
	}
	if p := a.events[0].Data.(HealthPayload); p.Percent != 80 {
		t.Errorf("a: expected 80%%, got %v", p.Percent)
	}
	if len(b.events) != 2 {
		t.Errorf("b: expected 2 events, got %d", len(b.events))
	}
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	count := 0
	sub := d.Subscribe(EventMessage, ListenerFunc(func(Event) { count++ }))
	other := 0
	d.Subscribe(EventMessage, ListenerFunc(func(Event) { other++ }))

	d.Emit(EventMessage, MessagePayload{Text: "Paused", Duration: 1.2})
	d.Unsubscribe(sub)
	d.Emit(EventMessage, MessagePayload{Text: "Paused", Duration: 1.2})

	if count != 1 {
		t.Errorf("unsubscribed listener: expected 1 call, got %d", count)
	}
	if other != 2 {
		t.Errorf("remaining listener: expected 2 calls, got %d", other)
	}

	// 重复取消无副作用
	d.Unsubscribe(sub)
}

func TestSubscribeAll(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	subs := d.SubscribeAll(r, AllTypes()...)
	if len(subs) != len(AllTypes()) {
		t.Fatalf("expected %d subscriptions, got %d", len(AllTypes()), len(subs))
	}
	for _, et := range AllTypes() {
		d.Emit(et, nil)
	}
	if len(r.events) != len(AllTypes()) {
		t.Errorf("expected %d events, got %d", len(AllTypes()), len(r.events))
	}
}
