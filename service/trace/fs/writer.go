// Package fs persists diagnostic events as JSON documents over the
// abstract file storage service, one object per event.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/nanokern/sched/service/trace"
)

// Config holds configuration for the filesystem event writer.
type Config struct {
	// BaseURL is the directory (or afs URL) the event files are written
	// under.
	BaseURL string
}

// DefaultConfig returns a default writer configuration.
func DefaultConfig() Config {
	return Config{BaseURL: "/tmp/nanokern/trace"}
}

// Writer persists events under BaseURL/<session>/<seq>.json.
type Writer struct {
	fs     afs.Service
	config Config
	mu     sync.Mutex
	seq    uint64
}

// NewWriter creates a filesystem event writer and ensures the base
// directory exists.
func NewWriter(fs afs.Service, config Config) (*Writer, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	ctx := context.Background()
	exists, _ := fs.Exists(ctx, config.BaseURL)
	if !exists {
		if err := fs.Create(ctx, config.BaseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", config.BaseURL, err)
		}
	}
	return &Writer{fs: fs, config: config}, nil
}

// Handle serialises event and uploads it. Failures are swallowed: event
// persistence is fire-and-forget and must never surface into the
// scheduling path.
func (w *Writer) Handle(event *trace.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	w.mu.Lock()
	w.seq++
	name := fmt.Sprintf("%012d.json", w.seq)
	w.mu.Unlock()
	dest := path.Join(w.config.BaseURL, event.SessionID, name)
	_ = w.fs.Upload(context.Background(), dest, file.DefaultFileOsMode, bytes.NewBuffer(data))
}
