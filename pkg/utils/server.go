package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const serverIDFile = ".server_id"

// GetPersistentServerID returns a stable id for this instance, reported by
// the health endpoint and attached to pipeline logs.
// Order: explicit override, the id stored under storagePath, a new random id
// (persisted best-effort so restarts keep it).
func GetPersistentServerID(override, storagePath string) string {
	if id := strings.TrimSpace(override); id != "" {
		return id
	}

	idFile := filepath.Join(storagePath, serverIDFile)
	if data, err := os.ReadFile(idFile); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	newID := "shiur-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	if err := os.MkdirAll(storagePath, 0755); err == nil {
		_ = os.WriteFile(idFile, []byte(newID), 0644)
	}
	return newID
}
