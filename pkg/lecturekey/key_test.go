package lecturekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey_KnownShapes(t *testing.T) {
	cases := []struct {
		name string
		url  string
		kind string
		want string
	}{
		{"lecture page", "https://www.yutorah.org/lectures/1154805", "notes", "yutorah_1154805_notes"},
		{"lecture page with slug", "https://www.yutorah.org/lectures/1150968/It's-Dark-Outside", "transcript", "yutorah_1150968_transcript"},
		{"sidebar data", "https://www.yutorah.org/sidebar/lecturedata/1154805", "notes", "yutorah_1154805_notes"},
		{"legacy cfm", "https://www.yutorah.org/lecture.cfm/774512", "notes", "yutorah_774512_notes"},
		{"no scheme", "yutorah.org/lectures/42/", "transcript", "yutorah_42_transcript"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CacheKey(tc.url, tc.kind)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCacheKey_SlugDoesNotChangeKey(t *testing.T) {
	a, err := CacheKey("https://www.yutorah.org/lectures/1150968/first-title", "notes")
	require.NoError(t, err)
	b, err := CacheKey("https://www.yutorah.org/lectures/1150968/a-completely-different-title?x=1", "notes")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCacheKey_ShapesAgreeOnID(t *testing.T) {
	a, _ := CacheKey("https://www.yutorah.org/lectures/555", "notes")
	b, _ := CacheKey("https://www.yutorah.org/sidebar/lecturedata/555", "notes")
	c, _ := CacheKey("https://www.yutorah.org/lecture.cfm/555", "notes")

	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
}

func TestCacheKey_DistinctIDsDoNotCollide(t *testing.T) {
	a, _ := CacheKey("https://www.yutorah.org/lectures/12", "notes")
	b, _ := CacheKey("https://www.yutorah.org/lectures/123", "notes")
	c, _ := CacheKey("https://www.yutorah.org/lectures/12", "transcript")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheKey_InvalidFormat(t *testing.T) {
	for _, u := range []string{
		"",
		"https://www.yutorah.org/",
		"https://www.yutorah.org/lectures/",
		"https://www.yutorah.org/lectures/abc",
		"https://example.com/podcast/1234",
		"https://www.yutorah.org/lecturesx/1234",
	} {
		_, err := CacheKey(u, "notes")
		assert.ErrorIs(t, err, ErrInvalidFormat, "url %q", u)
	}
}

func TestCanonicalURL(t *testing.T) {
	got, err := CanonicalURL("https://yutorah.org/sidebar/lecturedata/1154805?foo=bar")
	require.NoError(t, err)
	assert.Equal(t, "https://www.yutorah.org/lectures/1154805", got)

	_, err = CanonicalURL("https://yutorah.org/search")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestExtractID_FirstMatchWins(t *testing.T) {
	id, err := ExtractID("https://www.yutorah.org/lectures/111/see/lectures/222")
	require.NoError(t, err)
	assert.Equal(t, "111", id)
}
