// Package history records executed command lines, persisted to a file shared
// with readline so arrow-key recall survives sessions.
package history

import (
	"bufio"
	"os"
)

const maxItems = 1000

type History struct {
	items []string
	file  string
}

// New loads history from file. A missing file yields empty history.
func New(file string) (*History, error) {
	h := &History{file: file}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Add appends a command line, trimming to the last maxItems entries.
func (h *History) Add(item string) {
	h.items = append(h.items, item)
	if len(h.items) > maxItems {
		h.items = h.items[len(h.items)-maxItems:]
	}
}

// GetAll returns a copy of the recorded lines, oldest first.
func (h *History) GetAll() []string {
	return append([]string{}, h.items...)
}

// Save writes the history back to its file.
func (h *History) Save() error {
	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, item := range h.items {
		if _, err := writer.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func (h *History) load() error {
	file, err := os.Open(h.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.items = append(h.items, scanner.Text())
	}
	if len(h.items) > maxItems {
		h.items = h.items[len(h.items)-maxItems:]
	}
	return scanner.Err()
}
