package sequence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touchImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestNewImageSpecDefaults(t *testing.T) {
	s := NewImageSpec("/tmp/photo.jpg")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 3.0, s.Duration)
	assert.Equal(t, "Fade In", s.StartTransition)
	assert.Equal(t, 1.0, s.StartTransitionDuration)
	assert.Equal(t, "Fade Out", s.EndTransition)
	assert.Equal(t, 1.0, s.EndTransitionDuration)
	assert.Equal(t, "None", s.Effect)
	assert.Equal(t, "None", s.OverlayEffect)
	assert.Equal(t, "photo.jpg", s.Filename())
}

func TestClampTransitions(t *testing.T) {
	s := NewImageSpec("/tmp/a.png")
	s.Duration = 0.5
	s.StartTransitionDuration = 2
	s.EndTransitionDuration = -1

	s.ClampTransitions()
	assert.Equal(t, 0.5, s.StartTransitionDuration)
	assert.Equal(t, 0.0, s.EndTransitionDuration)
}

func TestValidate(t *testing.T) {
	s := NewImageSpec("/tmp/a.png")
	assert.NoError(t, s.Validate())

	s.Duration = 0
	assert.Error(t, s.Validate())

	s = NewImageSpec("")
	assert.Error(t, s.Validate())
}

func TestManagerAddRequiresImageFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()

	_, err := m.Add(touchImage(t, dir, "notes.txt"))
	assert.Error(t, err)

	_, err = m.Add(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	item, err := m.Add(touchImage(t, dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	assert.Same(t, item, m.Get(0))
}

func TestManagerOrdering(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	a, _ := m.Add(touchImage(t, dir, "a.png"))
	b, _ := m.Add(touchImage(t, dir, "b.png"))
	c, _ := m.Add(touchImage(t, dir, "c.png"))

	require.NoError(t, m.MoveUp(2))
	assert.Same(t, c, m.Get(1))
	assert.Same(t, b, m.Get(2))

	require.NoError(t, m.MoveDown(0))
	assert.Same(t, c, m.Get(0))
	assert.Same(t, a, m.Get(1))

	assert.Error(t, m.MoveUp(0))
	assert.Error(t, m.MoveDown(2))
	assert.Error(t, m.MoveUp(-1))
}

func TestManagerRemove(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	m.Add(touchImage(t, dir, "a.png"))
	b, _ := m.Add(touchImage(t, dir, "b.png"))

	require.NoError(t, m.Remove(0))
	assert.Equal(t, 1, m.Len())
	assert.Same(t, b, m.Get(0))

	assert.Error(t, m.Remove(5))
	assert.Nil(t, m.Get(5))
}

func TestApplyToAll(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	m.Add(touchImage(t, dir, "a.png"))
	m.Add(touchImage(t, dir, "b.png"))

	m.ApplyToAll(BulkSettings{
		Duration:        2,
		StartTransition: "Wipe In Left",
		// window longer than the new duration must clamp per entry
		StartTransitionDuration: 5,
		Effect:                  "Sepia",
	})

	for _, item := range m.All() {
		assert.Equal(t, 2.0, item.Duration)
		assert.Equal(t, "Wipe In Left", item.StartTransition)
		assert.Equal(t, 2.0, item.StartTransitionDuration)
		assert.Equal(t, "Sepia", item.Effect)
		// untouched fields keep their values
		assert.Equal(t, "Fade Out", item.EndTransition)
	}
}

func TestTotalDuration(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	assert.Equal(t, 0.0, m.TotalDuration())

	a, _ := m.Add(touchImage(t, dir, "a.png"))
	b, _ := m.Add(touchImage(t, dir, "b.png"))
	a.Duration = 1.5
	b.Duration = 2.25
	assert.Equal(t, 3.75, m.TotalDuration())
}
