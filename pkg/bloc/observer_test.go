package bloc

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/go-drift/bloc/pkg/errors"
)

type recordingObserver struct {
	created []any
	changes []string
}

func (o *recordingObserver) OnCreate(_ any, initial any) {
	o.created = append(o.created, initial)
}

func (o *recordingObserver) OnChange(_ any, change fmt.Stringer) {
	o.changes = append(o.changes, change.String())
}

func TestObserverSeesCreateAndChange(t *testing.T) {
	obs := &recordingObserver{}
	SetObserver(obs)
	t.Cleanup(func() { SetObserver(nil) })

	b := New(1)
	b.Emit(2)

	assert.Equal(t, []any{1}, obs.created)
	assert.Equal(t, []string{"Change{current: 1, next: 2}"}, obs.changes)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	SetObserver(&LogObserver{Logger: logger})
	t.Cleanup(func() { SetObserver(nil) })

	b := New("idle")
	b.Emit("busy")

	out := buf.String()
	assert.Contains(t, out, "bloc created")
	assert.Contains(t, out, "bloc changed")
	assert.Contains(t, out, "busy")
}

type panickingObserver struct{}

func (panickingObserver) OnCreate(any, any)          { panic("create") }
func (panickingObserver) OnChange(any, fmt.Stringer) { panic("change") }

type panicRecorder struct {
	errors.LogHandler
	ops []string
}

func (h *panicRecorder) HandlePanic(err *errors.PanicError) {
	h.ops = append(h.ops, err.Op)
}

func TestObserverPanicIsContained(t *testing.T) {
	rec := &panicRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })
	SetObserver(panickingObserver{})
	t.Cleanup(func() { SetObserver(nil) })

	b := New(0)
	var got []int
	b.Listen(func(n int) { got = append(got, n) })
	b.Emit(1)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 1, b.State())
	assert.Equal(t, []string{"bloc.Observer.OnCreate", "bloc.Observer.OnChange"}, rec.ops)
}
