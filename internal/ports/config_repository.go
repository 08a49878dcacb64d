package ports

import "github.com/bnema/topicd/internal/domain"

type ConfigRepository interface {
	Load() (domain.Config, error)
	Path() string
}
