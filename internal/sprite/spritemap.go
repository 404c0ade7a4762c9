package sprite

import (
	"bytes"
	"encoding/json"
)

// Entry is one named time range inside the combined stream. Start and End are
// seconds from the beginning of the stream; End includes minimum-length
// padding but never the trailing alignment silence.
type Entry struct {
	Name  string  `json:"-"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Loop  bool    `json:"loop"`
}

// Duration returns the playable length of the entry in seconds.
func (e Entry) Duration() float64 {
	return e.End - e.Start
}

// Map is a name-to-entry mapping that preserves insertion order. Writing an
// existing name replaces the entry but keeps its original position, matching
// plain object-key assignment in the JSON output.
type Map struct {
	order   []string
	entries map[string]Entry
}

// NewMap returns an empty sprite map.
func NewMap() *Map {
	return &Map{entries: make(map[string]Entry)}
}

// Put stores e under e.Name, replacing any previous entry with that name.
func (m *Map) Put(e Entry) {
	if _, exists := m.entries[e.Name]; !exists {
		m.order = append(m.order, e.Name)
	}
	m.entries[e.Name] = e
}

// Get returns the entry for name.
func (m *Map) Get(name string) (Entry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// Len returns the number of named entries.
func (m *Map) Len() int {
	return len(m.order)
}

// Entries returns all entries in insertion order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.entries[name])
	}
	return out
}

// MarshalJSON emits the map as a JSON object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
