package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, defaultTitle, w.Title())
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.True(t, w.resizable)
}

func TestNewEngineWindowOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("SOP - Lineær Algebra"),
		WithWidth(1024),
		WithHeight(-5),
		WithResizable(false),
		WithMinSize(320, 240),
		WithMaxSize(1920, 0),
	)
	assert.Equal(t, "SOP - Lineær Algebra", w.Title())
	assert.Equal(t, 1024, w.Width())
	assert.Equal(t, defaultHeight, w.Height(), "non-positive sizes fall back to the default")
	assert.False(t, w.resizable)
	assert.Equal(t, [4]int{320, 240, 1920, 0}, [4]int{w.minWidth, w.minHeight, w.maxWidth, w.maxHeight})
}

func TestHandleResizeUpdatesSizeAndCallsBack(t *testing.T) {
	w := newEngineWindow()
	var got [][2]int
	w.SetResizeCallback(func(width, height int) {
		got = append(got, [2]int{width, height})
	})

	w.handleResize(1280, 720)
	w.handleResize(0, 0)

	assert.Equal(t, [][2]int{{1280, 720}, {0, 0}}, got)
	assert.Equal(t, 0, w.Width())
	assert.Equal(t, 0, w.Height())
}

func TestUnspawnedWindow(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Equal(t, 0.0, w.Time())
	assert.Error(t, w.Close())
	assert.NotPanics(t, w.RequestClose)
	assert.NotPanics(t, w.PollEvents)
}
