package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_PlainText(t *testing.T) {
	filters := ParseQuery("deployment broke")
	assert.Equal(t, "deployment broke", filters.Query)
	assert.Empty(t, filters.Sender)
	assert.Nil(t, filters.Before)
}

func TestParseQuery_AllTokens(t *testing.T) {
	filters := ParseQuery("from:alice kind:image before:2026-08-01 after:2026-07-01 cat pics")

	assert.Equal(t, "alice", filters.Sender)
	assert.Equal(t, "image", filters.Kind)
	require.NotNil(t, filters.Before)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *filters.Before)
	require.NotNil(t, filters.After)
	assert.Equal(t, "cat pics", filters.Query)
}

func TestParseQuery_BadDateStaysInQuery(t *testing.T) {
	filters := ParseQuery("before:notadate hello")
	assert.Nil(t, filters.Before)
	assert.Equal(t, "before:notadate hello", filters.Query)
}

func TestParseQuery_TokensAreCaseInsensitive(t *testing.T) {
	filters := ParseQuery("FROM:Alice hello")
	assert.Equal(t, "alice", filters.Sender)
	assert.Equal(t, "hello", filters.Query)
}
