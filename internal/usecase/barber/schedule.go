package barber

import (
	"context"
	"errors"
	"sort"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// Repository is the slice of the appointment repository this package needs.
type Repository interface {
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)
	UpdateBarber(ctx context.Context, barber *models.Barber) error
}

type SettingsSource interface {
	Scheduling() schedule.Settings
}

// ScheduleOutput shows both what is stored and the template in effect.
type ScheduleOutput struct {
	WorkStart      string `json:"work_start"`
	WorkEnd        string `json:"work_end"`
	ActiveWeekdays []int  `json:"active_weekdays"`

	EffectiveStart    string `json:"effective_start"`
	EffectiveEnd      string `json:"effective_end"`
	EffectiveWeekdays []int  `json:"effective_weekdays"`
}

func toOutput(b *models.Barber, s schedule.Settings) *ScheduleOutput {
	tpl := schedule.ResolveTemplate(b.WorkStart, b.WorkEnd, b.ActiveWeekdays, s)

	weekdays := tpl.Weekdays.Ints()
	if tpl.Weekdays.Empty() {
		weekdays = []int{0, 1, 2, 3, 4, 5, 6}
	}

	stored := b.ActiveWeekdays
	if stored == nil {
		stored = []int{}
	}

	return &ScheduleOutput{
		WorkStart:         b.WorkStart,
		WorkEnd:           b.WorkEnd,
		ActiveWeekdays:    stored,
		EffectiveStart:    tpl.Start.String(),
		EffectiveEnd:      tpl.End.String(),
		EffectiveWeekdays: weekdays,
	}
}

func getBarber(ctx context.Context, repo Repository, barbershopID, barberID uint) (*models.Barber, error) {
	b, err := repo.GetBarber(ctx, barbershopID, barberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return nil, err
	}
	return b, nil
}

// ======================================================
// GET
// ======================================================

type GetSchedule struct {
	repo     Repository
	settings SettingsSource
}

func NewGetSchedule(repo Repository, settings SettingsSource) *GetSchedule {
	return &GetSchedule{repo: repo, settings: settings}
}

func (uc *GetSchedule) Execute(ctx context.Context, barbershopID, barberID uint) (*ScheduleOutput, error) {
	b, err := getBarber(ctx, uc.repo, barbershopID, barberID)
	if err != nil {
		return nil, err
	}
	return toOutput(b, uc.settings.Scheduling()), nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateScheduleInput struct {
	BarbershopID uint
	BarberID     uint

	// Both empty resets to the configured default window.
	WorkStart      string
	WorkEnd        string
	ActiveWeekdays []int
}

type UpdateSchedule struct {
	repo     Repository
	settings SettingsSource
	audit    audit.Recorder
}

func NewUpdateSchedule(repo Repository, settings SettingsSource, audit audit.Recorder) *UpdateSchedule {
	return &UpdateSchedule{repo: repo, settings: settings, audit: audit}
}

func (uc *UpdateSchedule) Execute(ctx context.Context, in UpdateScheduleInput) (*ScheduleOutput, error) {
	if (in.WorkStart == "") != (in.WorkEnd == "") {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "work_start and work_end go together")
	}

	if in.WorkStart != "" {
		start, err := schedule.ParseTimeOfDay(in.WorkStart)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "work_start must be HH:MM")
		}
		end, err := schedule.ParseTimeOfDay(in.WorkEnd)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "work_end must be HH:MM")
		}
		if start >= end {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "work_start must be before work_end")
		}
		in.WorkStart, in.WorkEnd = start.String(), end.String()
	}

	weekdays := make([]int, 0, len(in.ActiveWeekdays))
	seen := map[int]bool{}
	for _, d := range in.ActiveWeekdays {
		if d < 0 || d > 6 {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "weekdays go from 0 (sunday) to 6 (saturday)")
		}
		if !seen[d] {
			seen[d] = true
			weekdays = append(weekdays, d)
		}
	}
	sort.Ints(weekdays)

	b, err := getBarber(ctx, uc.repo, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}

	b.WorkStart = in.WorkStart
	b.WorkEnd = in.WorkEnd
	b.ActiveWeekdays = weekdays

	if err := uc.repo.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		BarberID:     &b.ID,
		Action:       audit.ActionScheduleUpdated,
		Entity:       "barber",
		EntityID:     &b.ID,
		Metadata: map[string]any{
			"work_start":      b.WorkStart,
			"work_end":        b.WorkEnd,
			"active_weekdays": b.ActiveWeekdays,
		},
	})

	return toOutput(b, uc.settings.Scheduling()), nil
}
