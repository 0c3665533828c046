package game

import "sync"

// Registry maps room codes to live runtimes. Rooms are created lazily on
// first join and are never evicted by the registry itself; Remove exists
// for hosts that garbage collect on their own schedule.
type Registry struct {
	policy Policy

	mu    sync.RWMutex
	rooms map[string]*RoomRuntime
}

func NewRegistry(policy Policy) *Registry {
	return &Registry{
		policy: policy,
		rooms:  make(map[string]*RoomRuntime),
	}
}

func (r *Registry) GetOrCreate(roomCode string) *RoomRuntime {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rt, ok := r.rooms[roomCode]; ok {
		return rt
	}
	rt := newRoomRuntime(roomCode, r.policy)
	r.rooms[roomCode] = rt
	return rt
}

// Get looks up an existing room without creating one. Read paths use this
// so a typo'd room code stays a NotFound instead of minting an empty room.
func (r *Registry) Get(roomCode string) (*RoomRuntime, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.rooms[roomCode]
	return rt, ok
}

func (r *Registry) Remove(roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, roomCode)
}
