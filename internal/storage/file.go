package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

// File layout constants
const (
	FileSuffix      = ".json"
	BackupSuffix    = ".backup"
	TmpSuffix       = ".tmp.json"
	SumSuffix       = ".sum"
	FilePermissions = 0644
	DirPermissions  = 0755
)

// File keeps the record as a JSON file in a data directory
type File struct {
	path string
	log  *zap.Logger
}

// NewFile returns a file backend storing <dir>/<namespace>.json
func NewFile(dir, namespace string, log *zap.Logger) *File {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &File{
		path: filepath.Join(dir, namespace+FileSuffix),
		log:  log,
	}
}

// Path returns the location of the main record file
func (f *File) Path() string {
	return f.path
}

// Load reads and decodes the record file
func (f *File) Load() ([]model.Geo, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	sum, err := os.ReadFile(f.path + SumSuffix)
	switch {
	case err == nil:
		digest := strings.TrimSpace(string(sum))
		if err := verify(data, digest); err != nil {
			if !f.digestOfBackup(digest) {
				return nil, err
			}
			// Save replaced the state file but not its digest
			f.log.Warn("state file is newer than its digest, accepting it", zap.String("path", f.path))
		}
	case errors.Is(err, os.ErrNotExist):
		f.log.Debug("state file has no digest", zap.String("path", f.path))
	default:
		f.log.Warn("digest file unreadable, skipping check", zap.String("path", f.path), zap.Error(err))
	}

	return Decode(data)
}

// digestOfBackup reports whether digest matches the previous state kept in
// the backup file
func (f *File) digestOfBackup(digest string) bool {
	prev, err := os.ReadFile(f.path + BackupSuffix)
	if err != nil {
		return false
	}
	return verify(prev, digest) == nil
}

// Save writes the record to a temp file and renames it over the main file,
// keeping the previous contents as a backup
func (f *File) Save(geos []model.Geo) error {
	data, err := Encode(geos)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), DirPermissions); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Create backup
	if prev, err := os.ReadFile(f.path); err == nil {
		if err := os.WriteFile(f.path+BackupSuffix, prev, FilePermissions); err != nil {
			f.log.Warn("failed to create backup", zap.String("path", f.path), zap.Error(err))
		}
	}

	// Write to temp files first
	tmpFile := f.path + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return fmt.Errorf("write temp state file: %w", err)
	}
	tmpSum := f.path + SumSuffix + TmpSuffix
	if err := os.WriteFile(tmpSum, []byte(Digest(data)+"\n"), FilePermissions); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("write temp digest file: %w", err)
	}

	// Drop the old digest first; a state file without one is still loadable
	if err := os.Remove(f.path + SumSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		_ = os.Remove(tmpFile)
		_ = os.Remove(tmpSum)
		return fmt.Errorf("remove old digest file: %w", err)
	}

	// Rename temp files to actual files
	if err := os.Rename(tmpFile, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	if err := os.Rename(tmpSum, f.path+SumSuffix); err != nil {
		return fmt.Errorf("replace digest file: %w", err)
	}
	return nil
}
