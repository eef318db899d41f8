package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AlbumIDSet is the set of albums an image belongs to, persisted as a JSON array
// (e.g. "[3,12]") on the image row. Order is insertion order and carries no meaning.
type AlbumIDSet []uint64

func (s AlbumIDSet) Contains(albumID uint64) bool {
	for _, id := range s {
		if id == albumID {
			return true
		}
	}
	return false
}

// With returns a copy of the set including albumID, and whether anything was added
func (s AlbumIDSet) With(albumID uint64) (AlbumIDSet, bool) {
	if s.Contains(albumID) {
		return s, false
	}
	result := make(AlbumIDSet, len(s), len(s)+1)
	copy(result, s)
	return append(result, albumID), true
}

func (s *AlbumIDSet) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = AlbumIDSet{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("AlbumIDSet: unsupported type %T", value)
	}
	if len(raw) == 0 {
		*s = AlbumIDSet{}
		return nil
	}
	var ids []uint64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("AlbumIDSet: %w", err)
	}
	// Collapse any duplicates written by older versions
	result := make(AlbumIDSet, 0, len(ids))
	for _, id := range ids {
		result, _ = result.With(id)
	}
	*s = result
	return nil
}

func (s AlbumIDSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]uint64(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (AlbumIDSet) GormDataType() string {
	return "text"
}
