package lang

import (
	"fmt"
	"strings"
	"sync"
)

const (
	English = "en"
	French  = "fr"
	Default = English
)

// Supported reports whether code is one of the languages replies can be
// rendered in. Codes are compared case-insensitively.
func Supported(code string) bool {
	switch strings.ToLower(code) {
	case English, French:
		return true
	}
	return false
}

type Store struct {
	mu       sync.RWMutex
	fallback string
	prefs    map[string]string
}

func NewStore(fallback string) *Store {
	fallback = strings.ToLower(fallback)
	if !Supported(fallback) {
		fallback = Default
	}
	return &Store{fallback: fallback, prefs: make(map[string]string)}
}

func (s *Store) Get(userID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if code, ok := s.prefs[userID]; ok {
		return code
	}
	return s.fallback
}

// Set stores the lower-cased code for userID. Unsupported codes are rejected
// and leave any previous preference untouched.
func (s *Store) Set(userID, code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if !Supported(code) {
		return false
	}

	s.mu.Lock()
	s.prefs[userID] = code
	s.mu.Unlock()
	return true
}

// T renders the catalog entry for key in the given language, falling back to
// English for unknown codes and to the key itself for unknown keys.
func T(code, key string, args ...any) string {
	table, ok := catalog[strings.ToLower(code)]
	if !ok {
		table = catalog[English]
	}
	format, ok := table[key]
	if !ok {
		format, ok = catalog[English][key]
		if !ok {
			return key
		}
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
