package seed

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

// File is the persisted seed output: the exhibitor list plus venue
// metadata, keyed downstream by exhibitor name.
type File struct {
	Source     string      `json:"source"`
	Total      int         `json:"total"`
	Timestamp  string      `json:"timestamp"`
	Exhibitors []Exhibitor `json:"exhibitors"`
}

// Save writes the seed file.
func Save(path, source string, exhibitors []Exhibitor) error {
	f := File{
		Source:     source,
		Total:      len(exhibitors),
		Timestamp:  time.Now().Format("2006-01-02 15:04:05"),
		Exhibitors: exhibitors,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return eris.Wrap(err, "seed: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "seed: write %s", path)
	}
	return nil
}

// LoadFile reads a previously saved seed file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "seed: read %s", path)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "seed: parse %s", path)
	}
	return &f, nil
}

// Index builds the name-keyed venue lookup used by the enrichment stage.
func (f *File) Index() map[string]Exhibitor {
	idx := make(map[string]Exhibitor, len(f.Exhibitors))
	for _, ex := range f.Exhibitors {
		idx[ex.Name] = ex
	}
	return idx
}

// Names returns exhibitor names in seed order.
func (f *File) Names() []string {
	names := make([]string, len(f.Exhibitors))
	for i, ex := range f.Exhibitors {
		names[i] = ex.Name
	}
	return names
}
