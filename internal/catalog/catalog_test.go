package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-fulfillment/internal/domain"
)

func TestNewRejectsDuplicateCodes(t *testing.T) {
	_, err := New([]domain.Event{
		{Name: "A", Code: "X001"},
		{Name: "B", Code: "X001"},
	})
	assert.Error(t, err)
}

func TestByCode(t *testing.T) {
	c := Seed()

	// Exact code lookup resolves every entry, availability aside.
	for _, ev := range c.All() {
		got, ok := c.ByCode(ev.Code)
		assert.True(t, ok)
		assert.Equal(t, ev.Name, got.Name)
	}

	_, ok := c.ByCode("NOPE999")
	assert.False(t, ok)
}

func TestByNameAndDate(t *testing.T) {
	c := Seed()

	ev, ok := c.ByNameAndDate("concert rap việt", "2025-08-15")
	assert.True(t, ok)
	assert.Equal(t, "CRV001", ev.Code)

	_, ok = c.ByNameAndDate("Concert Rap Việt", "2025-08-16")
	assert.False(t, ok)
}

func TestOnDate(t *testing.T) {
	c := Seed()

	assert.Len(t, c.OnDate("2025-09-20"), 1)
	assert.Empty(t, c.OnDate("2025-12-31"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Đêm Nhạc Trịnh", "date": "2026-03-01", "event_code": "DNT010", "available": true, "ticket_types": ["Standard"]}
	]`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	ev, ok := c.ByCode("DNT010")
	assert.True(t, ok)
	assert.Equal(t, "Đêm Nhạc Trịnh", ev.Name)
	assert.True(t, ev.Available)
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
