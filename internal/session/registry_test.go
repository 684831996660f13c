package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mediquiz/internal/models"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	r := NewRegistry(time.Hour)

	s := r.Create()
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Review)

	got, ok := r.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = r.Get("unknown")
	assert.False(t, ok)
}

func TestRegistry_ExpiresIdleSessions(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }

	old := r.Create()
	now = now.Add(30 * time.Minute)
	_, ok := r.Get(old.ID)
	require.True(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok = r.Get(old.ID)
	assert.False(t, ok)

	stale := r.Create()
	now = now.Add(2 * time.Hour)
	r.Create()
	assert.Equal(t, 1, r.Len())
	_, ok = r.Get(stale.ID)
	assert.False(t, ok)
}

func TestSession_FlashesAreTakenOnce(t *testing.T) {
	s := NewRegistry(0).Create()
	s.AddFlash(Flash{Level: FlashWarning, Message: "답을 선택해주세요!"})

	assert.Equal(t, []Flash{{Level: FlashWarning, Message: "답을 선택해주세요!"}}, s.TakeFlashes())
	assert.Empty(t, s.TakeFlashes())
}

func TestSession_Outline(t *testing.T) {
	s := NewRegistry(0).Create()
	assert.Nil(t, s.Outline())

	outline := models.Outline{{MainTopic: "간염"}}
	s.SetOutline(outline)
	assert.Equal(t, outline, s.Outline())
}
