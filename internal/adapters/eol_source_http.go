package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"eol-check/internal/ports"
	"eol-check/internal/shared"
	"eol-check/internal/types"
)

// DefaultEOLURL always resolves to the newest endoflife.json release.
const DefaultEOLURL = "https://github.com/HenryJobst/endoflife.json/releases/download/latest/endoflife.json"

// maxEOLDocumentBytes bounds the download; the published document is a
// few megabytes.
const maxEOLDocumentBytes = 64 << 20

type HTTPEOLSource struct {
	URL    string
	client *http.Client
	cfg    httpRetryConfig
}

func NewHTTPEOLSource(url string, timeoutSec int, retries int, retryDelayMs int) HTTPEOLSource {
	if strings.TrimSpace(url) == "" {
		url = DefaultEOLURL
	}
	cfg := normalizeHTTPConfig(timeoutSec, retries, retryDelayMs)
	return HTTPEOLSource{
		URL:    strings.TrimSpace(url),
		client: &http.Client{Timeout: cfg.timeout},
		cfg:    cfg,
	}
}

func (s HTTPEOLSource) Describe() string {
	return s.URL
}

func (s HTTPEOLSource) Load(ctx context.Context) (types.EOLData, error) {
	log.Ctx(ctx).Info().Str("url", s.URL).Msg("fetching EOL data")
	resp, err := doGet(ctx, s.client, s.URL, s.cfg)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEOLDocumentBytes))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read EOL data").
			WithCause(err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("EOL data not found").
			WithCause(shared.HTTPStatusError(resp.StatusCode, s.URL))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch EOL data").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, s.URL, shared.Truncate(string(body), 200)))
	}
	return decodeEOLData(body)
}

func decodeEOLData(body []byte) (types.EOLData, error) {
	var data types.EOLData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse EOL data").
			WithCause(err)
	}
	if data == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("EOL data is empty")
	}
	return data, nil
}

var _ ports.EOLSourcePort = HTTPEOLSource{}
