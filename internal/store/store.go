package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"fmeca/pkg/schema"
)

const (
	studiesDir = "studies"
	lockName   = ".lock"
)

// Store persists studies as YAML documents under baseDir/studies/, one file
// per study. Writes go through a copy-on-write transaction under an advisory
// file lock.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir. The directory is created lazily
// on the first write.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// List returns all stored studies, newest first. Items are loaded in full so
// callers can display record counts without a second read.
func (s *Store) List() ([]*schema.Study, error) {
	dir := filepath.Join(s.baseDir, studiesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read studies directory: %w", err)
	}

	var studies []*schema.Study
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		study, err := s.readStudy(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		studies = append(studies, study)
	}

	sort.Slice(studies, func(i, j int) bool {
		return studies[i].Timestamp.After(studies[j].Timestamp)
	})
	return studies, nil
}

// Get returns the study with the given ID.
func (s *Store) Get(id string) (*schema.Study, error) {
	path := filepath.Join(s.baseDir, studiesDir, id+".yaml")
	study, err := s.readStudy(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("study %q not found", id)
		}
		return nil, err
	}
	return study, nil
}

// Save writes a study as a create-or-update keyed by its ID.
func (s *Store) Save(study *schema.Study) error {
	if study.ID == "" {
		return fmt.Errorf("study has no ID")
	}

	data, err := yaml.Marshal(study)
	if err != nil {
		return fmt.Errorf("marshal study: %w", err)
	}

	return s.withTx(func(tx *copyOnWriteTx) error {
		return tx.writeFile(filepath.Join(studiesDir, study.ID+".yaml"), data)
	})
}

// Delete removes a stored study. Deleting an unknown ID is an error.
func (s *Store) Delete(id string) error {
	path := filepath.Join(s.baseDir, studiesDir, id+".yaml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("study %q not found", id)
		}
		return fmt.Errorf("stat study: %w", err)
	}

	return s.withTx(func(tx *copyOnWriteTx) error {
		return tx.removeFile(filepath.Join(studiesDir, id+".yaml"))
	})
}

// withTx runs fn inside a locked copy-on-write transaction against the store
// directory.
func (s *Store) withTx(fn func(*copyOnWriteTx) error) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	lock := NewFileLock(filepath.Join(s.baseDir, lockName))
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Printf("warning: failed to release store lock: %v", err)
		}
	}()

	tx := newCopyOnWriteTx(s.baseDir)
	if err := tx.begin(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.rollback(); rbErr != nil {
			log.Printf("rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.commit(); err != nil {
		if rbErr := tx.rollback(); rbErr != nil {
			log.Printf("rollback failed: %v", rbErr)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) readStudy(path string) (*schema.Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var study schema.Study
	if err := yaml.Unmarshal(data, &study); err != nil {
		return nil, fmt.Errorf("parse study %s: %w", filepath.Base(path), err)
	}
	return &study, nil
}
