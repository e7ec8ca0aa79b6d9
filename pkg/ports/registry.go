package ports

import (
	"github.com/aretw0/rewind/pkg/domain"
)

// HandlerLookup resolves a mutation kind to its handler.
type HandlerLookup interface {
	Lookup(kind string) (domain.Handler, bool)
}
