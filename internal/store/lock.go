package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"syscall"
	"time"
)

const staleLockAge = 30 * time.Minute

// lockMetadata is the content written into the lock file so a competing
// process can report who holds it.
type lockMetadata struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	Timestamp time.Time `json:"timestamp"`
}

// FileLock guards the study store against concurrent writers using an
// advisory flock plus a metadata file for stale detection.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a file lock at the given path.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Acquire attempts to take the lock without blocking. A lock held by a dead
// process or older than the stale age is stolen.
func (l *FileLock) Acquire() error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close lock file during error handling: %v", closeErr)
		}

		existing, readErr := l.readMetadata()
		if readErr == nil && l.isStale(existing) {
			return l.steal()
		}

		if readErr == nil {
			age := time.Since(existing.Timestamp).Round(time.Second)
			return fmt.Errorf("store locked by PID %d on %s (%v ago)",
				existing.PID, existing.Hostname, age)
		}

		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	l.file = file

	hostname, _ := os.Hostname()
	meta := lockMetadata{
		PID:       os.Getpid(),
		Hostname:  hostname,
		Timestamp: time.Now(),
	}

	data, _ := json.MarshalIndent(meta, "", "  ")
	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("seek lock file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("write lock metadata: %w", err)
	}

	return nil
}

// Release drops the lock and removes the lock file.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		log.Printf("warning: failed to release flock: %v", err)
	}
	if err := l.file.Close(); err != nil {
		log.Printf("warning: failed to close lock file: %v", err)
	}
	l.file = nil

	return os.Remove(l.path)
}

func (l *FileLock) readMetadata() (*lockMetadata, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}

	var meta lockMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// isStale reports whether the holding process is dead or the lock has
// exceeded the stale age.
func (l *FileLock) isStale(meta *lockMetadata) bool {
	process, err := os.FindProcess(meta.PID)
	if err != nil {
		return true
	}

	// On Unix FindProcess always succeeds, so signal 0 probes liveness.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return true
	}

	return time.Since(meta.Timestamp) > staleLockAge
}

func (l *FileLock) steal() error {
	_ = os.Remove(l.path)
	return l.Acquire()
}
