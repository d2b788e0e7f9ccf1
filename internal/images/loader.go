// Package images turns image arguments into references a draft can hold:
// remote URLs pass through, local files are read and inlined as data: URLs.
package images

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// DefaultMaxSize bounds a single inlined file.
const DefaultMaxSize = 10 << 20

// Loader resolves image arguments.
type Loader struct {
	fs      afero.Fs
	maxSize int64
	logger  *zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs reads files from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithMaxSize sets the largest file that will be inlined.
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader over the OS filesystem.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:      afero.NewOsFs(),
		maxSize: DefaultMaxSize,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves every source concurrently and returns the references in the
// order given. Either all sources resolve or an error is returned and no
// reference is.
func (l *Loader) Load(ctx context.Context, sources ...string) ([]properties.ImageRef, error) {
	refs, err := iter.MapErr(sources, func(src *string) (properties.ImageRef, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return l.resolve(*src)
	})
	if err != nil {
		return nil, err
	}
	l.logger.Debug().Int("images", len(refs)).Msg("Images loaded")
	return refs, nil
}

func (l *Loader) resolve(src string) (properties.ImageRef, error) {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return "", errors.NewValidationError("image", src, "empty image source")
	case IsRemote(src):
		return properties.ImageRef(src), nil
	}
	return l.inline(src)
}

// inline reads path and encodes it as a base64 data: URL.
func (l *Loader) inline(path string) (properties.ImageRef, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return "", errors.WrapIO("stat", path, err)
	}
	if info.IsDir() {
		return "", errors.NewValidationError("image", path, "is a directory")
	}
	if info.Size() > l.maxSize {
		return "", errors.NewValidationError("image", path, "file too large")
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}

	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return "", errors.NewValidationError("image", path, "not an image ("+mediaType+")")
	}

	return properties.ImageRef("data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// IsRemote reports whether src is already a reference rather than a path.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:")
}
