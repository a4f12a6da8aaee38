package main

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestLineSource(t *testing.T) {
	in := strings.NewReader("control c\n\n   \n  hello world  \npress enter")
	var got []string
	for line := range lineSource(t.Context(), in) {
		got = append(got, line)
	}
	want := []string{"control c", "hello world", "press enter"}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLineSourceStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	src := lineSource(ctx, strings.NewReader("a\nb\nc\n"))
	<-src
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-src:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("source not closed after cancel")
		}
	}
}

func TestListenRoutesUntilClosed(t *testing.T) {
	app, fk, _ := newRouterApp(t, true)
	src := make(chan string, 2)
	src <- "control a"
	src <- "press tab"
	close(src)

	done := make(chan struct{})
	go func() {
		app.listen(t.Context(), src)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listen did not return")
	}
	want := "press ctrl, press a, release a, release ctrl, press tab, release tab"
	if got := fk.Trace(); got != want {
		t.Errorf("trace = %q", got)
	}
}
