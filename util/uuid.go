package util

import "github.com/google/uuid"

// PsuUUID returns a random UUID string for session identification
func PsuUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
