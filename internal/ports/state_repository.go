package ports

import (
	"context"

	"github.com/bnema/topicd/internal/domain"
)

type StateRepository interface {
	// Load never fails hard: a missing file yields an empty mapping and a
	// corrupt one yields an empty mapping with an error wrapping
	// domain.ErrStateCorrupt.
	Load(ctx context.Context) (domain.RotationStates, error)
	Save(ctx context.Context, states domain.RotationStates) error
}
