package perfil

import (
	"context"

	"github.com/nominaweb/nominaweb/internal/domain"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

var errUnavailable = apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "profile service is not configured")

type unavailableService struct{}

func (unavailableService) Get(context.Context) (domain.Perfil, error) {
	return domain.Perfil{}, errUnavailable
}

func (unavailableService) Update(context.Context, domain.Perfil) (domain.Perfil, error) {
	return domain.Perfil{}, errUnavailable
}
