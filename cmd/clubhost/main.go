package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	v10validator "github.com/go-playground/validator/v10"
	"github.com/ivanpodgorny/clubhost/internal/cache"
	"github.com/ivanpodgorny/clubhost/internal/client"
	"github.com/ivanpodgorny/clubhost/internal/config"
	"github.com/ivanpodgorny/clubhost/internal/handler"
	"github.com/ivanpodgorny/clubhost/internal/middleware"
	"github.com/ivanpodgorny/clubhost/internal/reconcile"
	"github.com/ivanpodgorny/clubhost/internal/schedule"
	"github.com/ivanpodgorny/clubhost/internal/service"
	"github.com/ivanpodgorny/clubhost/internal/validator"
)

func main() {
	if err := Execute(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func Execute() error {
	cfg, err := config.NewBuilder(os.Args[1:]).LoadFlags().LoadEnv().Build()
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.CachePath(), cfg.CacheTTL())
	if err != nil {
		return err
	}

	defer func(store *cache.Cache) {
		err = store.Close()
	}(store)

	validationEngine := v10validator.New()
	if err := validationEngine.RegisterValidation("dayslice", validator.DaySlice); err != nil {
		return err
	}

	var (
		r       = chi.NewRouter()
		v       = validator.New(validationEngine)
		billing = client.NewBilling(cfg.BillingAddress())
		events  = client.NewSchedule(cfg.ScheduleAddress())
		notices = service.NewNotices()
		profile = service.NewProfile(billing, store)
		rec     = reconcile.New(billing, notices, profile, profile, cfg.PollInterval())
		guard   = schedule.NewGuard(events)
		cs      = service.NewCheckout(billing, rec)
		ss      = service.NewSchedule(events, guard, store)
		ch      = handler.NewCheckout(cs, notices, v)
		sh      = handler.NewSchedule(ss, v)
	)

	defer cs.Cancel()

	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SessionToken())

		r.Get("/plans", ch.GetPlans)
		r.Post("/checkout", ch.Create)
		r.Get("/checkout/state", ch.State)
		r.Post("/checkout/cancel", ch.CancelSession)
		r.Get("/events", sh.GetEvents)
		r.Post("/events/jump", sh.OpenJump)
		r.Post("/events/jump/retry", sh.RetryJump)
		r.Get("/events/jump", sh.GetJumpLists)
	})

	err = http.ListenAndServe(cfg.ServerAddress(), r)

	return err
}
