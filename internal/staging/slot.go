package staging

// Slot holds at most one file plus a secret, as staged for an unlock.
type Slot struct {
	file   *File
	secret string
}

// NewSlot creates an empty Slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Set replaces any staged file with the first input. Extra inputs are
// ignored and an empty call leaves the slot untouched.
func (s *Slot) Set(inputs ...Input) (File, bool) {
	if len(inputs) == 0 {
		return File{}, false
	}
	f := newFile(inputs[0])
	s.file = &f
	return f, true
}

// File returns the staged file, if any.
func (s *Slot) File() (File, bool) {
	if s.file == nil {
		return File{}, false
	}
	return *s.file, true
}

// ClearFile removes the staged file and keeps the secret.
func (s *Slot) ClearFile() {
	s.file = nil
}

// SetSecret stores the password used to unlock the staged file.
func (s *Slot) SetSecret(secret string) {
	s.secret = secret
}

// Secret returns the stored password.
func (s *Slot) Secret() string {
	return s.secret
}

// Clear discards the file and the secret.
func (s *Slot) Clear() {
	s.file = nil
	s.secret = ""
}
