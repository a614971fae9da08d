package valkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient(Config{URL: "  "})
	require.Error(t, err)

	_, err = NewClient(Config{URL: "ftp://nowhere"})
	require.Error(t, err)
}

func TestNewClient_UnreachableServer(t *testing.T) {
	_, err := NewClient(Config{URL: "redis://127.0.0.1:1/0", ConnectTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestClient_Key(t *testing.T) {
	c := &Client{keyPrefix: "shiur:"}
	assert.Equal(t, "shiur:lecture:yutorah_1_notes", c.Key("lecture", "yutorah_1_notes"))

	bare := &Client{}
	assert.Equal(t, "lecture:yutorah_1_notes", bare.Key("lecture", "yutorah_1_notes"))
}
