package ports

import (
	"context"

	"eol-check/internal/types"
)

type EOLSourcePort interface {
	Load(ctx context.Context) (types.EOLData, error)
	Describe() string
}
