package clipboard

import (
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"
)

type failingBoard struct{ Memory }

func (f *failingBoard) Copy(string) error { return errors.New("no display") }

func waitClipboard(t *testing.T, b Board, want string) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		got, _ := b.Read()
		if got == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("clipboard = %q, want %q", got, want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestTypeCopiesPastesAndRestores(t *testing.T) {
	b := &Memory{}
	b.Copy("original")
	var pastes atomic.Int32
	d := NewDictator(b, func() bool { pastes.Add(1); return true }, 20*time.Millisecond)

	if err := d.Type("hello world"); err != nil {
		t.Fatal(err)
	}
	if pastes.Load() != 1 {
		t.Errorf("pastes = %d", pastes.Load())
	}
	if got, _ := b.Read(); got != "hello world" {
		t.Errorf("clipboard right after Type = %q", got)
	}
	waitClipboard(t, b, "original")
}

func TestTypeBurstRestoresOnce(t *testing.T) {
	b := &Memory{}
	b.Copy("keep me")
	d := NewDictator(b, func() bool { return true }, 30*time.Millisecond)

	for _, s := range []string{"one", "two", "three"} {
		if err := d.Type(s); err != nil {
			t.Fatal(err)
		}
	}
	waitClipboard(t, b, "keep me")

	want := []string{"keep me", "one", "two", "three", "keep me"}
	if got := b.Copies(); !slices.Equal(got, want) {
		t.Errorf("copies = %q, want %q", got, want)
	}
}

func TestTypeEmptyClipboardNotRestored(t *testing.T) {
	b := &Memory{}
	d := NewDictator(b, func() bool { return true }, 10*time.Millisecond)
	if err := d.Type("x"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(40 * time.Millisecond)
	if got := b.Copies(); !slices.Equal(got, []string{"x"}) {
		t.Errorf("copies = %q", got)
	}
}

func TestTypePasteFailureRestoresImmediately(t *testing.T) {
	b := &Memory{}
	b.Copy("before")
	d := NewDictator(b, func() bool { return false }, time.Hour)

	if err := d.Type("lost"); !errors.Is(err, ErrPaste) {
		t.Fatalf("err = %v, want ErrPaste", err)
	}
	if got, _ := b.Read(); got != "before" {
		t.Errorf("clipboard = %q, want restored", got)
	}
}

func TestTypeCopyFailure(t *testing.T) {
	called := false
	d := NewDictator(&failingBoard{}, func() bool { called = true; return true }, 0)
	if err := d.Type("x"); err == nil {
		t.Fatal("expected copy error")
	}
	if called {
		t.Error("paste sent although copy failed")
	}
}

func TestFlush(t *testing.T) {
	b := &Memory{}
	b.Copy("saved")
	d := NewDictator(b, func() bool { return true }, time.Hour)
	d.Type("temp")
	d.Flush()
	if got, _ := b.Read(); got != "saved" {
		t.Errorf("clipboard after Flush = %q", got)
	}
	d.Flush() // nothing pending
}

func TestTypeEmptyText(t *testing.T) {
	b := &Memory{}
	d := NewDictator(b, func() bool { t.Error("paste called"); return true }, 0)
	if err := d.Type(""); err != nil {
		t.Error(err)
	}
}
