// Package clipboard puts dictated text into the focused window by way of
// the system clipboard.
package clipboard

import (
	"sync"

	cb "github.com/atotto/clipboard"
)

// Board is a text clipboard.
type Board interface {
	Read() (string, error)
	Copy(text string) error
}

// System is the desktop clipboard.
type System struct{}

func (System) Read() (string, error) {
	return cb.ReadAll()
}

func (System) Copy(text string) error {
	return cb.WriteAll(text)
}

// Unsupported reports whether no clipboard utility is available
// (xclip, xsel or wl-copy on Linux).
func Unsupported() bool {
	return cb.Unsupported
}

// Memory is an in-process Board for tests and headless runs.
type Memory struct {
	mu     sync.Mutex
	text   string
	copies []string
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.copies = append(m.copies, text)
	return nil
}

// Copies returns every value written so far, oldest first.
func (m *Memory) Copies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.copies...)
}
