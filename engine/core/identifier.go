package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ownersMu sync.Mutex
	Owners   []interface{}
)

// IdentifierAquireNewID hands out the lowest free identifier and records its owner.
func IdentifierAquireNewID(owner interface{}) uint32 {
	ownersMu.Lock()
	defer ownersMu.Unlock()

	length := uint32(len(Owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if Owners[i] == nil {
			Owners[i] = owner
			return i
		}
	}

	// No free slot, push a new one. The id will be length - 1.
	Owners = append(Owners, owner)
	return uint32(len(Owners)) - 1
}

func IdentifierReleaseID(id uint32) error {
	ownersMu.Lock()
	defer ownersMu.Unlock()

	if len(Owners) == 0 {
		err := fmt.Errorf("identifier_release_id called before initialization. identifier_aquire_new_id should have been called first. Nothing was done")
		return err
	}

	length := uint32(len(Owners))
	if id >= length {
		err := fmt.Errorf("identifier_release_id: id '%d' out of range (max=%d). Nothing was done", id, length)
		return err
	}

	// Just zero out the entry, making it available for use.
	Owners[id] = nil
	return nil
}

// NewObjectLabel returns a unique label such as "shader-3f2a9c1e" for objects
// the user did not name.
func NewObjectLabel(kind string) string {
	id := uuid.New().String()
	return fmt.Sprintf("%s-%s", strings.ToLower(kind), id[:8])
}
