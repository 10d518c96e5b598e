package repository

import "errors"

var (
	// ErrInvalidJSON is returned by Save when the payload is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// DocumentRepository stores the single employee document.
//
// Load never fails: problems are reported inside the returned JSON as an
// {"error": ...} object so the editor can display them.
type DocumentRepository interface {
	Load() []byte
	Save(raw []byte) error
	Exists() bool
	Path() string
}
