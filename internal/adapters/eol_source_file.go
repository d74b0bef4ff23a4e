package adapters

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"eol-check/internal/ports"
	"eol-check/internal/types"
)

type FileEOLSource struct {
	Path string
	fs   afero.Fs
}

func NewFileEOLSource(path string) FileEOLSource {
	return NewFileEOLSourceFs(afero.NewOsFs(), path)
}

func NewFileEOLSourceFs(fs afero.Fs, path string) FileEOLSource {
	return FileEOLSource{Path: strings.TrimSpace(path), fs: fs}
}

func (s FileEOLSource) Describe() string {
	return s.Path
}

func (s FileEOLSource) Load(ctx context.Context) (types.EOLData, error) {
	if s.Path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("EOL data file path is required")
	}
	body, err := afero.ReadFile(s.fs, s.Path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read EOL data file").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("path", s.Path).Int("bytes", len(body)).Msg("EOL data loaded from file")
	return decodeEOLData(body)
}

var _ ports.EOLSourcePort = FileEOLSource{}
