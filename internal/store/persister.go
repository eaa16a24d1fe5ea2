package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iammorganparry/focus/internal/model"
)

// TasksKey is the fixed key the task list is stored under.
const TasksKey = "pomodoro-todos"

// Persister loads and saves the full, ordered task collection.
type Persister interface {
	// Load returns the saved tasks. found is false when nothing was ever saved.
	Load() (tasks []model.Task, found bool, err error)

	// Save replaces the saved collection with tasks.
	Save(tasks []model.Task) error
}

// Blob is the key/value capability BlobPersister needs.
type Blob interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// BlobPersister stores the encoded task list under a single key.
type BlobPersister struct {
	kv  Blob
	key string
}

// NewBlobPersister returns a persister writing to TasksKey in kv.
func NewBlobPersister(kv Blob) *BlobPersister {
	return &BlobPersister{kv: kv, key: TasksKey}
}

func (p *BlobPersister) Load() ([]model.Task, bool, error) {
	data, found, err := p.kv.Get(p.key)
	if err != nil || !found {
		return nil, false, err
	}
	tasks, err := Decode(data)
	if err != nil {
		return nil, true, err
	}
	return tasks, true, nil
}

func (p *BlobPersister) Save(tasks []model.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	return p.kv.Put(p.key, data)
}

// FilePersister keeps the task list in a JSON file.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load() ([]model.Task, bool, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", p.path, err)
	}
	tasks, err := Decode(data)
	if err != nil {
		return nil, true, err
	}
	return tasks, true, nil
}

// Save writes to a temp file and renames it over the target so a crash never
// leaves a half-written list behind.
func (p *FilePersister) Save(tasks []model.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// MemoryPersister keeps the encoded list in memory. Setting Err makes every
// call fail, which stands in for an unavailable backing store.
type MemoryPersister struct {
	data  []byte
	saves int
	Err   error
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load() ([]model.Task, bool, error) {
	if p.Err != nil {
		return nil, false, p.Err
	}
	if p.data == nil {
		return nil, false, nil
	}
	tasks, err := Decode(p.data)
	if err != nil {
		return nil, true, err
	}
	return tasks, true, nil
}

func (p *MemoryPersister) Save(tasks []model.Task) error {
	if p.Err != nil {
		return p.Err
	}
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	p.data = data
	p.saves++
	return nil
}

// Saves returns the number of successful Save calls.
func (p *MemoryPersister) Saves() int {
	return p.saves
}
