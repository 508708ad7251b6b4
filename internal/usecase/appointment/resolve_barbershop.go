package appointment

import (
	"context"
	"strings"

	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// ResolveBarbershop maps the public slug to a barbershop.
type ResolveBarbershop struct {
	repo domain.Repository
}

func NewResolveBarbershop(repo domain.Repository) *ResolveBarbershop {
	return &ResolveBarbershop{repo: repo}
}

func (uc *ResolveBarbershop) Execute(ctx context.Context, slug string) (*models.Barbershop, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, httperr.ErrBusiness(httperr.CodeBarbershopNotFound)
	}

	shop, err := uc.repo.GetBarbershopBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeBarbershopNotFound)
	}
	return shop, nil
}
