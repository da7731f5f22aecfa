package submission

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	// Image formats the preview probe can decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Client-side submission constraints. These mirror the backend's hard limits
// and are fixed, not configurable.
const (
	MaxImageBytes = 20 << 20 // 20 MiB
	MinTextLen    = 5
	MaxTextLen    = 5000
)

var (
	ErrNotImage  = errors.New("file is not an image")
	ErrTooLarge  = errors.New("image exceeds the 20 MiB limit")
	ErrTextShort = errors.New("claim is too short (minimum 5 characters)")
	ErrTextLong  = errors.New("claim is too long (maximum 5000 characters)")
)

// Kind distinguishes the two submission flows.
type Kind int

const (
	KindImage Kind = iota
	KindText
)

// Submission is the currently selected artifact. A new selection replaces
// the previous instance; instances are never mutated after creation.
type Submission struct {
	Kind      Kind
	Path      string
	Filename  string
	MIME      string
	Size      int64
	SizeLabel string
	Text      string
}

// Preview is the result of the asynchronous image probe.
type Preview struct {
	Width  int
	Height int
	Format string
	Err    error
}

// Store holds at most one live submission.
type Store struct {
	current *Submission
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the live submission, or nil when the store is empty.
func (s *Store) Current() *Submission {
	return s.current
}

// Select validates and stores an image file. On success it kicks off a
// fire-and-forget preview probe whose result arrives on the returned
// channel; the caller may ignore it. On failure the store is unchanged.
func (s *Store) Select(path string) (*Submission, <-chan Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read file: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return nil, nil, fmt.Errorf("%w (%s)", ErrTooLarge, HumanSize(info.Size()))
	}

	mime, err := sniffMIME(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read file: %w", err)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, nil, fmt.Errorf("%w (detected %s)", ErrNotImage, mime)
	}

	sub := &Submission{
		Kind:      KindImage,
		Path:      path,
		Filename:  filepath.Base(path),
		MIME:      mime,
		Size:      info.Size(),
		SizeLabel: HumanSize(info.Size()),
	}
	s.current = sub

	previews := make(chan Preview, 1)
	go probePreview(path, previews)

	return sub, previews, nil
}

// SetText validates and stores a text claim.
func (s *Store) SetText(text string) (*Submission, error) {
	if err := ValidateClaim(text); err != nil {
		return nil, err
	}
	sub := &Submission{Kind: KindText, Text: text}
	s.current = sub
	return sub, nil
}

// Clear drops the stored submission. Safe to call repeatedly.
func (s *Store) Clear() {
	s.current = nil
}

// ValidateClaim checks a text claim against the length bounds.
func ValidateClaim(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < MinTextLen {
		return ErrTextShort
	}
	if n > MaxTextLen {
		return ErrTextLong
	}
	return nil
}

// HumanSize renders a byte count the way the upload widget shows it:
// bytes under 1 KiB, KiB to one decimal under 1 MiB, MiB to one decimal
// beyond that.
func HumanSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	}
}

// sniffMIME detects content type from the file's leading bytes.
func sniffMIME(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-selected file
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// probePreview decodes the image header off the caller's path. It never
// blocks Select; the buffered channel lets the result be dropped.
func probePreview(path string, out chan<- Preview) {
	defer close(out)

	f, err := os.Open(path) // #nosec G304 -- user-selected file
	if err != nil {
		out <- Preview{Err: err}
		return
	}
	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		out <- Preview{Err: err}
		return
	}
	out <- Preview{Width: cfg.Width, Height: cfg.Height, Format: format}
}
