package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

const backupTimeFormat = "20060102T150405Z"

// WriteBackup writes v as zstd compressed JSON into dir, named after the
// given time, and returns the path written.
func WriteBackup(dir string, at time.Time, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("backup-%s.json.zst", at.UTC().Format(backupTimeFormat)))
	tmp := path + ".tmp"

	if err := writeCompressed(tmp, v); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("renaming backup: %w", err)
	}
	return path, nil
}

func writeCompressed(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing backup: %w", cerr)
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}

	bw := bufio.NewWriter(enc)
	if err := json.NewEncoder(bw).Encode(v); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("flushing backup: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing backup: %w", err)
	}
	return nil
}

// ReadBackup decodes a file written by WriteBackup into v.
func ReadBackup(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening backup: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	defer dec.Close()

	if err := json.NewDecoder(bufio.NewReader(dec)).Decode(v); err != nil {
		return fmt.Errorf("decoding backup: %w", err)
	}
	return nil
}

// PruneBackups removes all but the newest keep backups in dir.
func PruneBackups(dir string, keep int) error {
	matches, err := filepath.Glob(filepath.Join(dir, "backup-*.json.zst"))
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}
	if keep < 0 || len(matches) <= keep {
		return nil
	}

	// Names sort by time.
	for _, path := range matches[:len(matches)-keep] {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}
