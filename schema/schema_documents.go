package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DocumentSet bundles the four decoded input documents of one load.
type DocumentSet struct {
	Lifecycle     *LifecycleDocument
	AuthorNetwork *AuthorNetworkDocument
	FileIndex     *FileIndexDocument
	DirStats      *DirStatsDocument
}

// LifecycleDocument is the primary input: the full per-file change history of a
// repository. The Files mapping keeps document order because node identifiers,
// bucket order and ranking tie-breaks all derive from encounter order.
type LifecycleDocument struct {
	Repository   string        `json:"repository"`    // Path or URL the history was exported from
	GeneratedAt  int64         `json:"generated_at"`  // Export time in seconds since epoch
	TotalCommits int           `json:"total_commits"` // Distinct commits across the whole history
	TotalFiles   int           `json:"total_files"`   // Files present in the mapping at export time
	TotalChanges int           `json:"total_changes"` // Sum of all change events
	Files        FileEventList `json:"files"`
}

// FileEvents pairs one file path with its chronological change events.
type FileEvents struct {
	Path   string
	Events []ChangeEvent
}

// FileEventList is the lifecycle file mapping in document order.
// It round-trips as a JSON object whose key order is significant.
type FileEventList []FileEvents

// UnmarshalJSON decodes a JSON object into an ordered list of path/event pairs.
// The standard map decode would lose key order, so this walks the token stream.
func (l *FileEventList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectObjectStart(dec, "files"); err != nil {
		return err
	}
	out := FileEventList{}
	for dec.More() {
		path, err := nextObjectKey(dec, "files")
		if err != nil {
			return err
		}
		var events []ChangeEvent
		if err := dec.Decode(&events); err != nil {
			return fmt.Errorf("files[%q]: %w", path, err)
		}
		out = append(out, FileEvents{Path: path, Events: events})
	}
	*l = out
	return nil
}

// MarshalJSON encodes the list back into a JSON object in list order.
func (l FileEventList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fe := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeObjectEntry(&buf, fe.Path, fe.Events); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AuthorNetworkDocument summarizes the people behind the history.
// The list order is the source order and is preserved into metadata.
type AuthorNetworkDocument struct {
	Authors []AuthorRecord `json:"authors"`
}

// AuthorRecord is one author in the network summary.
type AuthorRecord struct {
	ID             string `json:"id"`              // Display name, unique within the export
	Email          string `json:"email,omitempty"` // Primary e-mail seen in the history
	Commits        int    `json:"commits"`         // Distinct commits authored
	Collaborations int    `json:"collaborations"`  // Distinct co-authors sharing at least one file
}

// FileIndexDocument is the flat file catalog. Only its size and per-file commit
// counts matter downstream, so plain map decoding is fine here.
type FileIndexDocument struct {
	Files map[string]FileIndexEntry `json:"files"`
}

// FileIndexEntry is one file in the catalog.
type FileIndexEntry struct {
	Commits int `json:"commits"`
}

// DirStatsDocument carries pre-computed per-directory statistics.
// Order-preserving so the filtered metadata list stays deterministic.
type DirStatsDocument struct {
	Directories DirStatList `json:"directories"`
}

// DirStatEntry is one directory in the statistics document.
type DirStatEntry struct {
	Path          string  `json:"path"`
	Commits       int     `json:"commits"`
	ActivityScore float64 `json:"activity_score"`
}

// DirStatList is the directory statistics mapping in document order.
type DirStatList []DirStatEntry

// UnmarshalJSON decodes the directories object preserving key order. When an
// entry omits its path field the object key stands in for it.
func (l *DirStatList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectObjectStart(dec, "directories"); err != nil {
		return err
	}
	out := DirStatList{}
	for dec.More() {
		key, err := nextObjectKey(dec, "directories")
		if err != nil {
			return err
		}
		var entry DirStatEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("directories[%q]: %w", key, err)
		}
		if entry.Path == "" {
			entry.Path = key
		}
		out = append(out, entry)
	}
	*l = out
	return nil
}

// MarshalJSON encodes the list back into a JSON object keyed by path.
func (l DirStatList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeObjectEntry(&buf, entry.Path, entry); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// expectObjectStart consumes the opening brace of a JSON object.
func expectObjectStart(dec *json.Decoder, label string) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%s: expected object, got %v", label, tok)
	}
	return nil
}

// nextObjectKey consumes and returns the next object key.
func nextObjectKey(dec *json.Decoder, label string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected object key, got %v", label, tok)
	}
	return key, nil
}

// writeObjectEntry appends one `"key":value` pair to an object under construction.
func writeObjectEntry(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("entry %q: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
