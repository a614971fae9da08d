package cache

import "context"

// Store is one cache backend.
type Store interface {
	Name() string
	// Get reports found=false when key has no value.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
}

type CacheStats struct {
	Backend   string `json:"backend"`
	Fallback  string `json:"fallback"`
	Entries   int    `json:"file_entries"`
	TotalSize int64  `json:"file_size"`
	HumanSize string `json:"human_size"`
}

// IGateway is the fail-open cache used by the request pipeline. Backend
// errors are logged inside the gateway and never returned.
type IGateway interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) bool
	Backend() string
	Stats(ctx context.Context) CacheStats
}
