package configsource

import "context"

// Static is a Source returning fixed bytes. A nil document loads as ErrNotFound.
type Static struct {
	name string
	doc  []byte
}

// NewStatic returns a Static source called name.
func NewStatic(name string, doc []byte) *Static {
	return &Static{name: name, doc: doc}
}

// Load returns the document.
func (s *Static) Load(context.Context) ([]byte, error) {
	if s.doc == nil {
		return nil, ErrNotFound
	}
	return s.doc, nil
}

// Name returns the source name.
func (s *Static) Name() string {
	return s.name
}
