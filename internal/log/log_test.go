package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	ctx := WithLogger(context.Background(), l)

	if got := FromContext(ctx); got != l {
		t.Error("FromContext should return the logger passed to WithLogger")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	t.Parallel()

	l := FromContext(context.Background())
	if l == nil {
		t.Fatal("FromContext returned nil on empty context")
	}
	if l.Writer() != io.Discard {
		t.Error("fallback logger should discard output")
	}
}

func TestLogger_Quiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, true)

	l.Printf("progress %d\n", 1)
	l.Println("progress")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q, want nothing", buf.String())
	}

	// Warnings bypass quiet mode.
	l.Warnf("something happened")
	if got := buf.String(); got != "blobless: something happened\n" {
		t.Errorf("Warnf wrote %q", got)
	}
}

func TestLogger_Command(t *testing.T) {
	t.Parallel()

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Command("git", "fsck", "--no-dangling")
		if got := buf.String(); got != "$ git fsck --no-dangling\n" {
			t.Errorf("Command wrote %q", got)
		}
	})

	t.Run("not verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)
		l.Command("git", "fsck")
		if buf.Len() != 0 {
			t.Errorf("Command wrote %q, want nothing", buf.String())
		}
	})
}

func TestLogger_Printf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.Printf("saved %d KB\n", 42)
	if !strings.Contains(buf.String(), "saved 42 KB") {
		t.Errorf("Printf wrote %q", buf.String())
	}
}
