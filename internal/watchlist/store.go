package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StockSignal/internal/model"
)

// DefaultSymbols is the list used when nothing has been saved yet.
var DefaultSymbols = []string{"AAPL", "MSFT"}

// Store loads and saves the ordered symbol list.
type Store interface {
	Load() ([]string, error)
	Save(symbols []string) error
}

// FileStore keeps the watchlist as JSON in a single file.
type FileStore struct {
	Path     string
	Defaults []string
}

// NewFileStore creates a FileStore falling back to DefaultSymbols.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Defaults: DefaultSymbols}
}

// Load reads the watchlist. Returns a copy of the defaults if the file doesn't exist.
func (f *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]string(nil), f.Defaults...), nil
		}
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	var wl model.Watchlist
	if err := json.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", f.Path, err)
	}
	return wl.Symbols, nil
}

// Save writes the watchlist, creating the parent directory if needed.
func (f *FileStore) Save(symbols []string) error {
	wl := model.Watchlist{Symbols: symbols, UpdatedAt: time.Now()}
	if wl.Symbols == nil {
		wl.Symbols = []string{}
	}
	data, err := json.MarshalIndent(wl, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create watchlist dir: %w", err)
		}
	}
	return os.WriteFile(f.Path, data, 0o644)
}
