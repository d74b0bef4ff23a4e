package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"eol-check/internal/ports"
	"eol-check/internal/types"
)

const DefaultCacheTTL = 6 * time.Hour

type cacheEnvelope struct {
	FetchedAt time.Time     `json:"fetched_at"`
	Source    string        `json:"source"`
	Data      types.EOLData `json:"data"`
}

// CachedEOLSource keeps the last fetched document on disk. Fresh entries
// are served without touching the inner source; a stale entry is still
// returned when a refresh fails.
type CachedEOLSource struct {
	Inner ports.EOLSourcePort
	Dir   string
	TTL   time.Duration
	Clock func() time.Time
	fs    afero.Fs
}

func NewCachedEOLSource(fs afero.Fs, inner ports.EOLSourcePort, dir string, ttl time.Duration) CachedEOLSource {
	return CachedEOLSource{
		Inner: inner,
		Dir:   dir,
		TTL:   ttl,
		Clock: time.Now,
		fs:    fs,
	}
}

// DefaultCacheDir places the cache under the user cache directory,
// falling back to the temp dir.
func DefaultCacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "eol-check")
}

func (s CachedEOLSource) Describe() string {
	return s.Inner.Describe()
}

func (s CachedEOLSource) Load(ctx context.Context) (types.EOLData, error) {
	logger := log.Ctx(ctx)
	path := s.cachePath()
	cached, hasCached := s.read(path)
	if hasCached && s.TTL > 0 && s.now().Sub(cached.FetchedAt) < s.TTL {
		logger.Debug().Str("path", path).Time("fetched_at", cached.FetchedAt).Msg("EOL cache hit")
		return cached.Data, nil
	}
	data, err := s.Inner.Load(ctx)
	if err != nil {
		if hasCached {
			logger.Warn().Err(err).Time("fetched_at", cached.FetchedAt).Msg("EOL refresh failed, using stale cache")
			return cached.Data, nil
		}
		return nil, err
	}
	if err := s.write(path, data); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to update EOL cache")
	}
	return data, nil
}

func (s CachedEOLSource) cachePath() string {
	sum := sha256.Sum256([]byte(s.Inner.Describe()))
	return filepath.Join(s.Dir, "endoflife-"+hex.EncodeToString(sum[:6])+".json")
}

func (s CachedEOLSource) read(path string) (cacheEnvelope, bool) {
	body, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return cacheEnvelope{}, false
	}
	var envelope cacheEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data == nil {
		return cacheEnvelope{}, false
	}
	if strings.TrimSpace(envelope.Source) != s.Inner.Describe() {
		return cacheEnvelope{}, false
	}
	return envelope, true
}

func (s CachedEOLSource) write(path string, data types.EOLData) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create cache directory").
			WithCause(err)
	}
	body, err := json.Marshal(cacheEnvelope{
		FetchedAt: s.now().UTC(),
		Source:    s.Inner.Describe(),
		Data:      data,
	})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode cache entry").
			WithCause(err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, body, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cache entry").
			WithCause(err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to commit cache entry").
			WithCause(err)
	}
	return nil
}

func (s CachedEOLSource) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

var _ ports.EOLSourcePort = CachedEOLSource{}
