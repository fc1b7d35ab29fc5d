package schema

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewRecordID generates a new failure-mode record ID in format FM-{nanoid(10)}.
func NewRecordID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("FM-%s", id), nil
}

// NewStudyID generates a new study document ID in format STUDY-{nanoid(10)}.
func NewStudyID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("STUDY-%s", id), nil
}
