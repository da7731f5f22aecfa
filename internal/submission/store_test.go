package submission

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writePNG writes a small valid PNG and returns its path.
func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

func TestSelectValidImage(t *testing.T) {
	store := NewStore()
	path := writePNG(t, t.TempDir(), 12, 8)

	sub, previews, err := store.Select(path)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	if sub.Kind != KindImage {
		t.Errorf("Kind = %v, want KindImage", sub.Kind)
	}
	if sub.Filename != "test.png" {
		t.Errorf("Filename = %q, want %q", sub.Filename, "test.png")
	}
	if sub.MIME != "image/png" {
		t.Errorf("MIME = %q, want %q", sub.MIME, "image/png")
	}
	if store.Current() != sub {
		t.Error("Current() should return the stored submission")
	}

	select {
	case p := <-previews:
		if p.Err != nil {
			t.Errorf("preview probe failed: %v", p.Err)
		}
		if p.Width != 12 || p.Height != 8 {
			t.Errorf("preview dims = %dx%d, want 12x8", p.Width, p.Height)
		}
		if p.Format != "png" {
			t.Errorf("preview format = %q, want %q", p.Format, "png")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("preview probe never delivered")
	}
}

func TestSelectRejectsNonImage(t *testing.T) {
	store := NewStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("just some plain text content"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, _, err := store.Select(path)
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("Select() error = %v, want ErrNotImage", err)
	}
	if store.Current() != nil {
		t.Error("a rejected selection must leave the store empty")
	}
}

func TestSelectRejectsOversized(t *testing.T) {
	store := NewStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	// sparse file just over the limit; size is checked before content
	if err := f.Truncate(MaxImageBytes + 1); err != nil {
		_ = f.Close()
		t.Skipf("filesystem does not support truncate: %v", err)
	}
	_ = f.Close()

	_, _, err = store.Select(path)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Select() error = %v, want ErrTooLarge", err)
	}
	if store.Current() != nil {
		t.Error("a rejected selection must leave the store empty")
	}
}

func TestSelectMissingFile(t *testing.T) {
	store := NewStore()
	if _, _, err := store.Select("/no/such/file.png"); err == nil {
		t.Error("Select() should fail for a missing file")
	}
}

func TestSetText(t *testing.T) {
	store := NewStore()

	sub, err := store.SetText("the moon landing happened in 1969")
	if err != nil {
		t.Fatalf("SetText() error: %v", err)
	}
	if sub.Kind != KindText {
		t.Errorf("Kind = %v, want KindText", sub.Kind)
	}

	if _, err := store.SetText("hi"); !errors.Is(err, ErrTextShort) {
		t.Errorf("SetText(short) error = %v, want ErrTextShort", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore()
	if _, err := store.SetText("a plausible claim"); err != nil {
		t.Fatalf("SetText() error: %v", err)
	}

	store.Clear()
	if store.Current() != nil {
		t.Error("Clear() should empty the store")
	}
	store.Clear()
	if store.Current() != nil {
		t.Error("repeated Clear() should stay empty")
	}
}

func TestValidateClaim(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"valid claim", "vaccines cause autism according to a study", nil},
		{"minimum length", "12345", nil},
		{"too short", "abcd", ErrTextShort},
		{"whitespace only", "        ", ErrTextShort},
		{"whitespace-padded short", "  ab  ", ErrTextShort},
		{"maximum length", strings.Repeat("a", MaxTextLen), nil},
		{"too long", strings.Repeat("a", MaxTextLen+1), ErrTextLong},
		{"multibyte runes counted as runes", strings.Repeat("ü", MaxTextLen), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaim(tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateClaim() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{5<<20 + 1<<19, "5.5 MiB"},
		{MaxImageBytes, "20.0 MiB"},
	}

	for _, tt := range tests {
		if got := HumanSize(tt.size); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
