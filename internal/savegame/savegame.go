// Package savegame persists opaque JSON-serializable game state keyed by
// string slot names. It makes no assumptions about the state's shape: a blob
// goes in, the same blob comes out. Slot names become file names, so they
// are restricted to a safe character set.
package savegame

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the save directory relative to the process working directory.
const DefaultDir = "saves"

const slotExt = ".json"

// Store reads and writes save slots under a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir (DefaultDir when empty). The
// directory is created on first Save, not here, so constructing a store is
// side-effect free.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// validSlot rejects names that would escape the save directory or collide
// with path syntax. Letters, digits, dash, and underscore only.
func validSlot(slot string) error {
	if slot == "" {
		return fmt.Errorf("savegame: empty slot name")
	}
	for _, r := range slot {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("savegame: invalid slot name %q", slot)
		}
	}
	return nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+slotExt)
}

// Save marshals v to JSON and writes it to the slot, creating the save
// directory if needed.
func (s *Store) Save(slot string, v any) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(slot), data, 0644)
}

// Load reads the slot and unmarshals it into v. A missing slot is an error:
// unlike engine preferences there is no sensible default save.
func (s *Store) Load(slot string, v any) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Exists reports whether the slot has been saved.
func (s *Store) Exists(slot string) bool {
	if validSlot(slot) != nil {
		return false
	}
	_, err := os.Stat(s.path(slot))
	return err == nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (s *Store) Delete(slot string) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	err := os.Remove(s.path(slot))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Slots lists the saved slot names, without extension, in directory order.
// A missing save directory yields an empty list.
func (s *Store) Slots() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var slots []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, slotExt) {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, slotExt))
	}
	return slots, nil
}
