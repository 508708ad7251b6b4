package main

import (
	"go.uber.org/zap"

	"github.com/devCaiqueWS/barber-scheduler/internal/config"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/repository"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// seedDemo gives STORE=memory something to book against.
func seedDemo(mem *repository.MemoryStore, cfg *config.Config, log *zap.Logger) {
	shop := mem.AddBarbershop(models.Barbershop{
		Name:     "Demo Barbershop",
		Slug:     "demo",
		Timezone: cfg.ShopTimezone,
	})

	barber := mem.AddBarber(models.Barber{
		BarbershopID:   shop.ID,
		Name:           "Demo Barber",
		ActiveWeekdays: []int{1, 2, 3, 4, 5, 6},
		Active:         true,
	})

	haircut := mem.AddProduct(models.BarberProduct{
		BarbershopID: shop.ID,
		Name:         "Haircut",
		DurationMin:  30,
		Active:       true,
	})
	beard := mem.AddProduct(models.BarberProduct{
		BarbershopID: shop.ID,
		Name:         "Haircut + beard",
		DurationMin:  60,
		Active:       true,
	})

	log.Info("memory store seeded",
		zap.String("slug", shop.Slug),
		zap.Uint("barbershop_id", shop.ID),
		zap.Uint("barber_id", barber.ID),
		zap.Uints("product_ids", []uint{haircut.ID, beard.ID}),
	)
}
