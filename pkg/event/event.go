// Package event 提供模拟核心向外发送语义事件的分发器
//
// 核心只在状态变化时发出事件（血量百分比、波次、提示文字等），
// HUD、渲染和音频由订阅者自行处理。
package event

// EventType 事件类型
type EventType string

const (
	EventHealth      EventType = "health"       // HealthPayload
	EventWave        EventType = "wave"         // WavePayload
	EventBossHealth  EventType = "boss_health"  // BossHealthPayload
	EventPoints      EventType = "points"       // PointsPayload
	EventBuff        EventType = "buff"         // BuffPayload
	EventMessage     EventType = "message"      // MessagePayload
	EventDebug       EventType = "debug"        // DebugPayload
	EventWeapon      EventType = "weapon"       // WeaponPayload
	EventAmmo        EventType = "ammo"         // AmmoPayload
	EventGameOver    EventType = "game_over"    // GameOverPayload
	EventArmoryOpen  EventType = "armory_open"  // ArmoryPayload
	EventSpearMarker EventType = "spear_marker" // MarkerPayload
	EventFlash       EventType = "flash"        // FlashPayload
	EventPose        EventType = "pose"         // PosePayload
	EventAudioCue    EventType = "audio_cue"    // AudioCuePayload
)

// Event 事件
type Event struct {
	Type EventType
	Data interface{}
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 把普通函数适配为 Listener
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Subscription 订阅凭据，用于取消订阅
type Subscription struct {
	eventType EventType
	id        int
}

type subscriber struct {
	id       int
	listener Listener
}

// Dispatcher 事件分发器
// 同步分发，订阅者按订阅顺序收到事件
type Dispatcher struct {
	listeners map[EventType][]subscriber
	nextID    int
}

// NewDispatcher 创建分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscriber),
	}
}

// Subscribe 订阅一种事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) Subscription {
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscriber{id: d.nextID, listener: listener})
	return Subscription{eventType: eventType, id: d.nextID}
}

// SubscribeAll 用同一个订阅者订阅多种事件
func (d *Dispatcher) SubscribeAll(listener Listener, eventTypes ...EventType) []Subscription {
	subs := make([]Subscription, 0, len(eventTypes))
	for _, et := range eventTypes {
		subs = append(subs, d.Subscribe(et, listener))
	}
	return subs
}

// Unsubscribe 取消订阅
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	list := d.listeners[sub.eventType]
	for i, s := range list {
		if s.id == sub.id {
			d.listeners[sub.eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Dispatch 把事件发送给所有订阅者
func (d *Dispatcher) Dispatch(event Event) {
	for _, s := range d.listeners[event.Type] {
		s.listener.OnEvent(event)
	}
}

// Emit 构造并分发事件
func (d *Dispatcher) Emit(eventType EventType, data interface{}) {
	d.Dispatch(Event{Type: eventType, Data: data})
}

// AllTypes 返回全部事件类型
func AllTypes() []EventType {
	return []EventType{
		EventHealth, EventWave, EventBossHealth, EventPoints, EventBuff, EventMessage,
		EventDebug, EventWeapon, EventAmmo, EventGameOver, EventArmoryOpen,
		EventSpearMarker, EventFlash, EventPose, EventAudioCue,
	}
}
