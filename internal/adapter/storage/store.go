// Package storage persists whole-document resume snapshots. A snapshot is
// always written and read atomically; there are no partial saves and no
// migrations, a shape mismatch on load counts as "no saved data".
package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"placify-resume/internal/model"
)

// SnapshotStore is the persistence boundary the builder writes through.
// Load returns (nil, nil) when no usable snapshot exists; corrupt data is
// never surfaced to the caller.
type SnapshotStore interface {
	Save(doc *model.ResumeDocument) error
	Load() (*model.ResumeDocument, error)
	Clear() error
}

//go:embed snapshot.schema.json
var snapshotSchema string

// ValidateSnapshot checks raw snapshot JSON against the document schema.
func ValidateSnapshot(raw []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(snapshotSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("snapshot schema mismatch: %s", msgs)
}

// FileStore keeps the snapshot as a single JSON file under a fixed path.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ SnapshotStore = (*FileStore)(nil)

func (s *FileStore) Save(doc *model.ResumeDocument) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// write-then-rename so a crash mid-write never leaves a torn snapshot
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Load() (*model.ResumeDocument, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		slog.Warn("snapshot unreadable, falling back to defaults", "path", s.path, "error", err)
		return nil, nil
	}
	return DecodeSnapshot(raw), nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// DecodeSnapshot parses raw snapshot bytes into a document, returning nil for
// anything malformed or shape-mismatched.
func DecodeSnapshot(raw []byte) *model.ResumeDocument {
	if err := ValidateSnapshot(raw); err != nil {
		slog.Warn("discarding corrupt snapshot", "error", err)
		return nil
	}
	var doc model.ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("discarding undecodable snapshot", "error", err)
		return nil
	}
	return &doc
}
