package sexp

// CaptureMap maps capture names to their Capture matchers, keeping
// registration order.
type CaptureMap struct {
	names []string
	byKey map[string]*Capture
}

// NewCaptureMap creates an empty map.
func NewCaptureMap() *CaptureMap {
	return &CaptureMap{byKey: make(map[string]*Capture)}
}

// Set registers c under name, replacing any previous entry.
func (m *CaptureMap) Set(name string, c *Capture) {
	if _, ok := m.byKey[name]; !ok {
		m.names = append(m.names, name)
	}
	m.byKey[name] = c
}

// Get returns the capture registered under name.
func (m *CaptureMap) Get(name string) (*Capture, bool) {
	if m == nil {
		return nil, false
	}
	c, ok := m.byKey[name]
	return c, ok
}

// Value returns the last value captured under name.
func (m *CaptureMap) Value(name string) Value {
	if c, ok := m.Get(name); ok {
		return c.Value()
	}
	return nil
}

// Text returns the last value captured under name as a string.
func (m *CaptureMap) Text(name string) string {
	if c, ok := m.Get(name); ok {
		return c.Text()
	}
	return ""
}

// Names lists capture names in registration order.
func (m *CaptureMap) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Len is the number of registered captures.
func (m *CaptureMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}
