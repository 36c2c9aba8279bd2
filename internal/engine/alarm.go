// internal/engine/alarm.go
package engine

import (
	"log"

	"github.com/excaliburHisSheath/ld34-entry/internal/types"
)

// AlarmFunc is a scheduled callback. It runs on the game goroutine, one at
// a time, with no store borrows held.
type AlarmFunc func(scene *Scene, entity types.EntityID)

type alarmSlot struct {
	gen       uint32
	entity    types.EntityID
	remaining float64
	interval  float64 // > 0 means repeating
	callback  string
	active    bool
}

// AlarmTable schedules delay-triggered callbacks bound to entities.
//
// Callbacks are stored by name, not by function pointer: slots survive a
// hot reload while the functions behind the names are re-registered from
// scratch. Handles are generational, so a handle to a recycled slot simply
// stops being valid.
type AlarmTable struct {
	slots     []alarmSlot
	free      []uint32
	callbacks map[string]AlarmFunc
}

func NewAlarmTable() *AlarmTable {
	return &AlarmTable{
		callbacks: make(map[string]AlarmFunc),
	}
}

// RegisterCallback binds a name to a function. Re-registering a name
// replaces the binding; reload calls this for every callback, every time.
func (t *AlarmTable) RegisterCallback(name string, fn AlarmFunc) {
	t.callbacks[name] = fn
}

// ClearCallbacks drops all function bindings. The host calls this across a
// reload boundary; slot state is kept.
func (t *AlarmTable) ClearCallbacks() {
	t.callbacks = make(map[string]AlarmFunc)
}

// Assign schedules a one-shot alarm for entity after delay seconds.
func (t *AlarmTable) Assign(entity types.EntityID, delay float64, callback string) types.AlarmID {
	return t.schedule(entity, delay, 0, callback)
}

// AssignRepeating schedules an alarm that fires every interval seconds
// until cancelled.
func (t *AlarmTable) AssignRepeating(entity types.EntityID, interval float64, callback string) types.AlarmID {
	return t.schedule(entity, interval, interval, callback)
}

func (t *AlarmTable) schedule(entity types.EntityID, delay, interval float64, callback string) types.AlarmID {
	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots))
		t.slots = append(t.slots, alarmSlot{})
	}

	slot := &t.slots[index]
	slot.entity = entity
	slot.remaining = delay
	slot.interval = interval
	slot.callback = callback
	slot.active = true
	return types.NewAlarmID(index, slot.gen)
}

// Active reports the number of live alarms.
func (t *AlarmTable) Active() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].active {
			n++
		}
	}
	return n
}

// Valid reports whether the handle still refers to a live alarm.
func (t *AlarmTable) Valid(id types.AlarmID) bool {
	index := id.Index()
	if int(index) >= len(t.slots) {
		return false
	}
	slot := &t.slots[index]
	return slot.active && slot.gen == id.Gen()
}

// Cancel deactivates the alarm if the handle is still valid.
func (t *AlarmTable) Cancel(id types.AlarmID) {
	if !t.Valid(id) {
		return
	}
	t.release(id.Index())
}

// CancelFor deactivates every alarm bound to the entity. The scene calls
// this when the entity is destroyed so dead entities cannot fire.
func (t *AlarmTable) CancelFor(entity types.EntityID) {
	for i := range t.slots {
		if t.slots[i].active && t.slots[i].entity == entity {
			t.release(uint32(i))
		}
	}
}

func (t *AlarmTable) release(index uint32) {
	slot := &t.slots[index]
	slot.active = false
	slot.gen++
	t.free = append(t.free, index)
}

// Advance ticks every alarm by dt and fires the due ones. Callbacks may
// schedule or cancel alarms; alarms scheduled during this pass wait for the
// next one.
func (t *AlarmTable) Advance(scene *Scene, dt float64) {
	due := make([]uint32, 0, 4)
	for i := range t.slots {
		slot := &t.slots[i]
		if !slot.active {
			continue
		}
		slot.remaining -= dt
		if slot.remaining <= 0 {
			due = append(due, uint32(i))
		}
	}

	for _, index := range due {
		slot := &t.slots[index]
		if !slot.active || slot.remaining > 0 {
			// Cancelled, or recycled into a fresh alarm, by an earlier
			// callback in this pass.
			continue
		}
		name := slot.callback
		entity := slot.entity
		if slot.interval > 0 {
			slot.remaining = slot.interval
		} else {
			t.release(index)
		}

		fn, ok := t.callbacks[name]
		if !ok {
			log.Printf("alarm callback %q is not registered", name)
			continue
		}
		fn(scene, entity)
	}
}
