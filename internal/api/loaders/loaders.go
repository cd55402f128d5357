package loaders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
	"github.com/graph-gophers/dataloader/v7"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains the request-scoped dataloaders
type Loaders struct {
	HospitalLoader *dataloader.Loader[string, *entities.Hospital]
}

// NewLoaders creates a new instance of Loaders. A batch of hospital keys costs one
// catalog fetch.
func NewLoaders(provider providers.HospitalProvider) *Loaders {
	return &Loaders{
		HospitalLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Hospital] {
			results := make([]*dataloader.Result[*entities.Hospital], len(keys))
			hospitals, err := provider.FetchHospitals(ctx, "", "")

			byID := make(map[string]*entities.Hospital, len(hospitals))
			if err == nil {
				for _, h := range hospitals {
					byID[h.ID] = h
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Hospital]{Error: apperrors.NewExternalError("failed to load hospitals", err)}
				} else if h, ok := byID[key]; ok {
					results[i] = &dataloader.Result[*entities.Hospital]{Data: h}
				} else {
					results[i] = &dataloader.Result[*entities.Hospital]{Error: apperrors.NewNotFoundError(fmt.Sprintf("hospital %s not found", key))}
				}
			}
			return results
		}),
	}
}

// For returns the loaders attached to ctx, or nil
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// Middleware attaches fresh loaders to every request so cached results never
// outlive it
func Middleware(provider providers.HospitalProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(provider))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
