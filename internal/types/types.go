// internal/types/types.go
package types

// EntityID identifies a live entity. Zero is never a valid entity.
type EntityID uint64

// AlarmID is an opaque generational handle to a scheduled alarm. The slot
// index lives in the upper 32 bits and the generation in the lower 32, so a
// stale handle to a recycled slot fails validity checks instead of firing
// someone else's alarm.
type AlarmID uint64

// NewAlarmID packs a slot index and generation into an AlarmID.
func NewAlarmID(index, gen uint32) AlarmID {
	return AlarmID(uint64(index)<<32 | uint64(gen))
}

// Index extracts the slot index.
func (id AlarmID) Index() uint32 {
	return uint32(id >> 32)
}

// Gen extracts the generation.
func (id AlarmID) Gen() uint32 {
	return uint32(id & 0xFFFFFFFF)
}
