package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// SettingsSource supplies the live scheduling configuration.
type SettingsSource interface {
	Scheduling() schedule.Settings
	FallbackTimezone() string
}

// StaticSettings is a fixed SettingsSource.
type StaticSettings struct {
	Settings schedule.Settings
	Timezone string
}

func (s StaticSettings) Scheduling() schedule.Settings { return s.Settings }
func (s StaticSettings) FallbackTimezone() string      { return s.Timezone }

func notFoundAs(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func loadShopAndBarber(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	barberID uint,
) (*models.Barbershop, *models.Barber, error) {

	shop, err := repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, nil, notFoundAs(err, httperr.CodeBarbershopNotFound)
	}

	barber, err := repo.GetBarber(ctx, barbershopID, barberID)
	if err != nil {
		return nil, nil, notFoundAs(err, httperr.CodeBarberNotFound)
	}

	return shop, barber, nil
}

// leadTimeFor prefers the shop's own minimum advance over the configured one.
func leadTimeFor(shop *models.Barbershop, s schedule.Settings) time.Duration {
	if shop.MinAdvanceMinutes > 0 {
		return time.Duration(shop.MinAdvanceMinutes) * time.Minute
	}
	return s.LeadTime
}

func templateOf(barber *models.Barber, s schedule.Settings) schedule.Template {
	return schedule.ResolveTemplate(barber.WorkStart, barber.WorkEnd, barber.ActiveWeekdays, s)
}

func parseDate(raw string) (schedule.Date, error) {
	d, err := schedule.ParseDate(raw)
	if err != nil {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "date must be YYYY-MM-DD")
	}
	return d, nil
}
