package uid

import "github.com/google/uuid"

// New generates a new build request identifier.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id parses as a UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Short returns the first block of id, used as a compact board label.
// Ids that are not UUIDs are returned unchanged.
func Short(id string) string {
	if !IsValid(id) {
		return id
	}
	return id[:8]
}
