package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/josephgoksu/TaskDeck/models"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"

	backupPrefix = "todo-backup-"
)

// Formats returns the supported export formats.
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatTOML}
}

// ArchiveStore writes export documents and reads them back.
type ArchiveStore struct {
	fs afero.Fs
}

// NewArchiveStore creates an archive store on fsys. A nil fsys means the OS filesystem.
func NewArchiveStore(fsys afero.Fs) *ArchiveStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &ArchiveStore{fs: fsys}
}

// BackupFileName returns the export file name for the given day and format.
func BackupFileName(now time.Time, format string) string {
	return backupPrefix + now.UTC().Format(models.DateLayout) + "." + format
}

// Export writes tasks as an export document into dir and returns the file path.
func (s *ArchiveStore) Export(tasks []models.Task, dir, format string, now time.Time) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}

	doc := models.NewExportDocument(tasks, now.UTC())
	data, err := encodeDocument(doc, format)
	if err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, BackupFileName(now, format))
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export %s: %w", path, err)
	}
	return path, nil
}

// Import reads an export document. The file extension selects the format.
// Anything that does not decode into a valid document is a *CorruptDataError.
func (s *ArchiveStore) Import(path string) ([]models.Task, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := formatFromPath(path)
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, &CorruptDataError{Source: path, Err: err}
	}
	if err := validateTasks(doc.Tasks); err != nil {
		return nil, &CorruptDataError{Source: path, Err: err}
	}
	if doc.Tasks == nil {
		doc.Tasks = []models.Task{}
	}
	return doc.Tasks, nil
}

// List returns the backup files in dir, newest name first.
func (s *ArchiveStore) List(dir string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), backupPrefix) || !isSupportedFormat(formatFromPath(e.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

func encodeDocument(doc models.ExportDocument, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (want json, yaml, or toml)", format)
	}
}

func decodeDocument(data []byte, format string) (models.ExportDocument, error) {
	var doc models.ExportDocument
	switch format {
	case FormatJSON:
		if err := validateExportJSON(data); err != nil {
			return doc, err
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, err
		}
		return doc, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return doc, err
		}
	default:
		return doc, fmt.Errorf("unsupported import format %q", format)
	}

	if doc.Tasks == nil {
		doc.Tasks = []models.Task{}
	}
	// normalize through JSON so yaml and toml documents face the same schema
	normalized, err := json.Marshal(doc)
	if err != nil {
		return doc, err
	}
	if err := validateExportJSON(normalized); err != nil {
		return doc, err
	}
	return doc, nil
}

func formatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		return FormatYAML
	}
	return ext
}

func isSupportedFormat(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}
