package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/storefront/logger"
)

func TestNew_StampsIDAndTime(t *testing.T) {
	a := New(LevelSuccess, "Item added to cart")
	b := New(LevelSuccess, "Item added to cart")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Time.IsZero())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(context.Background(), New(LevelSuccess, "one"))
	r.Notify(context.Background(), New(LevelError, "two"))

	assert.Equal(t, []string{"one", "two"}, r.Messages())
	assert.Equal(t, LevelError, r.Notifications()[1].Level)

	r.Reset()
	assert.Empty(t, r.Messages())
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	Multi(&a, &b, Nop).Notify(context.Background(), New(LevelInfo, "hi"))
	assert.Equal(t, []string{"hi"}, a.Messages())
	assert.Equal(t, []string{"hi"}, b.Messages())
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "", &buf)

	n := NewLogNotifier(l)
	n.Notify(context.Background(), New(LevelError, "Something went wrong"))
	n.Notify(context.Background(), New(LevelSuccess, "Item added to cart"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"error"`)
	assert.Contains(t, lines[0], "Something went wrong")
	assert.Contains(t, lines[1], `"level":"info"`)
	assert.Contains(t, lines[1], `"component":"notify"`)
}

func TestHub_FanOut(t *testing.T) {
	h := NewHub(nil)
	a := h.Subscribe("a", 4)
	b := h.Subscribe("b", 4)
	assert.Equal(t, 2, h.Len())

	n := New(LevelSuccess, "Item removed from cart")
	h.Notify(context.Background(), n)

	assert.Equal(t, n, <-a.Events())
	assert.Equal(t, n, <-b.Events())
}

func TestHub_DropsWhenFull(t *testing.T) {
	h := NewHub(nil)
	s := h.Subscribe("slow", 1)

	h.Notify(context.Background(), New(LevelInfo, "first"))
	h.Notify(context.Background(), New(LevelInfo, "second"))

	got := <-s.Events()
	assert.Equal(t, "first", got.Message)
	select {
	case extra := <-s.Events():
		t.Fatalf("unexpected notification %q", extra.Message)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub(nil)
	s := h.Subscribe("a", 1)
	h.Unsubscribe("a")

	_, open := <-s.Events()
	assert.False(t, open)
	assert.Equal(t, 0, h.Len())
	h.Unsubscribe("a")
}

func TestHub_Close(t *testing.T) {
	h := NewHub(nil)
	s := h.Subscribe("a", 1)
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	_, open := <-s.Events()
	assert.False(t, open)

	h.Notify(context.Background(), New(LevelInfo, "ignored"))
	late := h.Subscribe("late", 1)
	_, open = <-late.Events()
	assert.False(t, open)
}
