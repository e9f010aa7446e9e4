package handler

import (
	"github.com/digennarot/dndScheduler/internal/config"
	"github.com/digennarot/dndScheduler/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	h.Mux.Route("/polls", func(r chi.Router) {
		r.With(h.auth, h.organizerInfo).Post("/", h.CreatePoll)
		r.With(h.auth, h.organizerInfo).Get("/", h.GetMyPolls)

		r.Route("/{pollID}", func(r chi.Router) {
			r.Use(h.poll)
			r.Get("/", h.GetPollDetails)
			r.Post("/join", h.JoinPoll)
			r.Get("/overlap", h.GetOverlap)
			r.Get("/best-times", h.GetBestTimes)
			r.Get("/export.ics", h.ExportICS)

			r.Route("/participants/{participantID}", func(r chi.Router) {
				r.Use(h.participant)
				r.Use(h.participantToken)
				r.Post("/availability", h.SubmitAvailability)
				r.Get("/availability", h.GetMyAvailability)
			})

			// organizer-only management of an existing poll
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Use(h.organizerInfo)
				r.Use(h.requirePollOwner)
				r.Patch("/", h.UpdatePoll)
				r.Delete("/", h.DeletePoll)
				r.Post("/finalize", h.FinalizePoll)
				r.Post("/remind", h.SendReminders)
			})
		})
	})
}
