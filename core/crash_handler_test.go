package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeScreen struct {
	finished chan struct{}
}

func (f *fakeScreen) Fini() {
	close(f.finished)
}

func TestGoRunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestHandleCrashFinalisesScreen(t *testing.T) {
	codes := make(chan int, 1)
	exitFn = func(code int) { codes <- code }
	t.Cleanup(func() { exitFn = osExit })

	scr := &fakeScreen{finished: make(chan struct{})}
	SetCrashScreen(scr)

	Go(func() { panic("boom") })

	select {
	case code := <-codes:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("crash handler did not exit")
	}
	select {
	case <-scr.finished:
	default:
		t.Fatal("screen not finalised")
	}
}

func TestHandleCrashNil(t *testing.T) {
	called := false
	exitFn = func(int) { called = true }
	t.Cleanup(func() { exitFn = osExit })

	HandleCrash(nil)
	assert.False(t, called)
}
