package theme

import (
	"sort"
	"strings"
	"sync"
)

// Stylesheet is an injected style node. ID is stable across replacements;
// Generation increases every time the node is recreated.
type Stylesheet struct {
	ID         string `json:"id"`
	CSS        string `json:"css"`
	Generation int    `json:"generation"`
}

// TokenStore is the style-token sink: a CSS custom property namespace plus
// a set of injected stylesheets keyed by element id. The Applicator is the
// only writer; renderers read through Get, Snapshot and CSS.
type TokenStore struct {
	mu          sync.RWMutex
	tokens      map[string]string
	sheets      map[string]*Stylesheet
	sheetOrder  []string
	generations map[string]int
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens:      make(map[string]string),
		sheets:      make(map[string]*Stylesheet),
		generations: make(map[string]int),
	}
}

// Commit sets a token. Keys carry no leading "--".
func (s *TokenStore) Commit(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key] = value
}

func (s *TokenStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.tokens[key]
	return v, ok
}

// Snapshot returns a copy of every committed token.
func (s *TokenStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.tokens))
	for k, v := range s.tokens {
		out[k] = v
	}
	return out
}

// InjectStylesheet replaces any stylesheet with the same id by a fresh one.
func (s *TokenStore) InjectStylesheet(id, css string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	s.generations[id]++
	s.sheets[id] = &Stylesheet{ID: id, CSS: css, Generation: s.generations[id]}
	s.sheetOrder = append(s.sheetOrder, id)
}

// RemoveStylesheet detaches the stylesheet with the given id, if present.
func (s *TokenStore) RemoveStylesheet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *TokenStore) Stylesheet(id string) (Stylesheet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.sheets[id]
	if !ok {
		return Stylesheet{}, false
	}
	return *sh, true
}

// Stylesheets returns the injected stylesheets in injection order.
func (s *TokenStore) Stylesheets() []Stylesheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Stylesheet, 0, len(s.sheetOrder))
	for _, id := range s.sheetOrder {
		out = append(out, *s.sheets[id])
	}
	return out
}

// CSS renders the tokens as a :root rule followed by every stylesheet.
func (s *TokenStore) CSS() string {
	tokens := s.Snapshot()
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, k := range keys {
		b.WriteString("  --")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(tokens[k])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	for _, sh := range s.Stylesheets() {
		b.WriteString("\n/* ")
		b.WriteString(sh.ID)
		b.WriteString(" */\n")
		b.WriteString(strings.TrimSpace(sh.CSS))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *TokenStore) removeLocked(id string) {
	if _, ok := s.sheets[id]; !ok {
		return
	}
	delete(s.sheets, id)
	for i, o := range s.sheetOrder {
		if o == id {
			s.sheetOrder = append(s.sheetOrder[:i], s.sheetOrder[i+1:]...)
			break
		}
	}
}
