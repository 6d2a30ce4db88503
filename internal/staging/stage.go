package staging

import (
	"slices"

	"github.com/google/uuid"
)

// Drop reports the end of a reorder gesture. Cancelled marks a drop outside
// any valid destination.
type Drop struct {
	Source      int
	Destination int
	Cancelled   bool
}

// Stage is the ordered set of files queued for a merge. Order is insertion
// order until changed by Move; indices stay dense and zero-based.
type Stage struct {
	files []File
}

// NewStage creates an empty Stage.
func NewStage() *Stage {
	return &Stage{}
}

// Add appends each input in the order given and returns the new entries.
func (s *Stage) Add(inputs ...Input) []File {
	added := make([]File, 0, len(inputs))
	for _, in := range inputs {
		added = append(added, newFile(in))
	}
	s.files = append(s.files, added...)
	return added
}

// RemoveAt deletes the entry at index, shifting later entries down by one.
// Reports false and leaves the stage unchanged when index is out of range.
func (s *Stage) RemoveAt(index int) bool {
	if index < 0 || index >= len(s.files) {
		return false
	}
	s.files = slices.Delete(s.files, index, index+1)
	return true
}

// Remove deletes the entry with the given identity.
func (s *Stage) Remove(id uuid.UUID) bool {
	return s.RemoveAt(s.IndexOf(id))
}

// Move relocates the entry at src to dst with Splice semantics.
// Reports false and leaves the stage unchanged for invalid positions.
func (s *Stage) Move(src, dst int) bool {
	out, ok := Splice(s.files, src, dst)
	if !ok {
		return false
	}
	s.files = out
	return true
}

// Apply completes a reorder gesture. A cancelled drop is a no-op.
func (s *Stage) Apply(d Drop) bool {
	if d.Cancelled {
		return false
	}
	return s.Move(d.Source, d.Destination)
}

// IndexOf returns the current position of id, or -1.
func (s *Stage) IndexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.files, func(f File) bool { return f.ID == id })
}

// At returns the entry at index.
func (s *Stage) At(index int) (File, bool) {
	if index < 0 || index >= len(s.files) {
		return File{}, false
	}
	return s.files[index], true
}

// Len returns the number of staged entries.
func (s *Stage) Len() int {
	return len(s.files)
}

// Files returns a copy of the staged entries in order.
func (s *Stage) Files() []File {
	return slices.Clone(s.files)
}

// Clear discards every entry.
func (s *Stage) Clear() {
	s.files = nil
}
