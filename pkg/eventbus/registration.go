package eventbus

import (
	"sync"

	"github.com/google/uuid"
)

// Registration removes a previously added handler.
type Registration interface {
	// RemoveHandler removes the handler from the registry it was added to.
	// Only the first call has an effect; later calls are no-ops.
	RemoveHandler()
}

// entry is one registration slot. Removal matches entries by pointer, so the
// same receiver added twice occupies two independent slots.
type entry struct {
	id       string
	receiver Receiver
}

func newEntry(r Receiver) *entry {
	return &entry{id: uuid.NewString(), receiver: r}
}

type registration struct {
	once   sync.Once
	remove func()
}

func newRegistration(remove func()) *registration {
	return &registration{remove: remove}
}

func (r *registration) RemoveHandler() {
	r.once.Do(r.remove)
}

// removeEntry returns list without e. The result never aliases list, so a
// publish ranging over the old slice is unaffected.
func removeEntry(list []*entry, e *entry) ([]*entry, bool) {
	for i, candidate := range list {
		if candidate == e {
			out := make([]*entry, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}
