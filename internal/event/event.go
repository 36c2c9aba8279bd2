// internal/event/event.go
package event

// EventType names a kind of game event.
type EventType string

// Event is a dispatched occurrence. Data holds the typed payload for the
// event's type; the New* constructors in types.go keep the pairing honest.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher routes events to subscribers, synchronously and in
// subscription order. Listeners run with no store borrows held, so they
// may freely read game state; publishers are responsible for releasing
// their borrows before dispatching.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers the listener for one event type. Subscribing the
// same listener twice delivers the event twice.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe drops the first registration of the listener for the type.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	subs := d.listeners[eventType]
	for i, l := range subs {
		if l == listener {
			d.listeners[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Dispatch delivers the event to every subscriber of its type. The
// subscriber list is snapshotted first, so a listener may subscribe or
// unsubscribe during delivery without disturbing the event in flight.
func (d *Dispatcher) Dispatch(event Event) {
	subs := d.listeners[event.Type]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]Listener, len(subs))
	copy(snapshot, subs)
	for _, l := range snapshot {
		l.OnEvent(event)
	}
}
