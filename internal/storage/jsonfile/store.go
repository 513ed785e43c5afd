// Package jsonfile stores completed runs as pretty-printed JSON files in a
// results directory and builds the leaderboard by scanning it.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/valouniversaire/internal/results"
)

// FilePrefix starts the name of every file written by Save.
const FilePrefix = "valouniversaire_"

var (
	// ErrInvalidFileName is returned when a name has no usable characters.
	ErrInvalidFileName = errors.New("jsonfile: invalid file name")
	// ErrInvalidData is returned when submitted content is not a JSON object.
	ErrInvalidData = errors.New("jsonfile: data must be a JSON object")
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)

// SanitizeFileName strips every character outside [a-zA-Z0-9_-.] from name
// and appends ".json" when missing.
//
// Postcondition: The result contains no path separator, or ErrInvalidFileName is returned.
func SanitizeFileName(name string) (string, error) {
	clean := unsafeChars.ReplaceAllString(name, "")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	if strings.Trim(strings.TrimSuffix(clean, ".json"), ".") == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return clean, nil
}

// SavedFile describes a written result file.
type SavedFile struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

// Store is a results.Store over a directory of JSON files.
type Store struct {
	dir    string
	logger *zap.Logger
}

var _ results.Store = (*Store)(nil)

// New creates the results directory if needed and returns a Store over it.
//
// Precondition: dir must be non-empty; logger must be non-nil.
// Postcondition: Returns a Store or a non-nil error if dir cannot be created.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("jsonfile: results directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the results directory.
func (s *Store) Dir() string { return s.dir }

// Save writes run to a new file named after the player and run id.
func (s *Store) Save(ctx context.Context, run results.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := SanitizeFileName(FilePrefix + run.PlayerName + "_" + run.ID.String())
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(NewDocument(run), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return results.ErrDuplicateRun
		}
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

// Submit writes client-provided result data under the sanitized fileName,
// replacing any file of the same name.
//
// Precondition: data must be a JSON object.
// Postcondition: The file holds data pretty-printed with two-space indentation.
func (s *Store) Submit(fileName string, data json.RawMessage) (SavedFile, error) {
	name, err := SanitizeFileName(fileName)
	if err != nil {
		return SavedFile{}, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return SavedFile{}, ErrInvalidData
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return SavedFile{}, fmt.Errorf("formatting %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, ".submit-*")
	if err != nil {
		return SavedFile{}, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return SavedFile{}, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return SavedFile{}, fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return SavedFile{}, fmt.Errorf("renaming %s: %w", name, err)
	}
	s.logger.Info("result file submitted", zap.String("file", name))
	return SavedFile{FileName: name, FilePath: path}, nil
}

// Top scans every *.json file and ranks the completed runs. Unreadable or
// malformed files are skipped.
func (s *Store) Top(ctx context.Context, limit int) ([]results.Score, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing result files: %w", err)
	}
	scores := make([]results.Score, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable result file", zap.String("file", path), zap.Error(err))
			continue
		}
		var f scoreFile
		if err := json.Unmarshal(raw, &f); err != nil {
			s.logger.Debug("skipping malformed result file", zap.String("file", path), zap.Error(err))
			continue
		}
		if score, ok := f.score(); ok {
			scores = append(scores, score)
		}
	}
	return results.Rank(scores, limit), nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
