package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes requiring a session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/password", h.changePassword)
		r.Get("/api/user/profile", h.profile)

		r.Get("/api/tasks", h.listTasks)
		r.Post("/api/tasks/complete", h.completeTask)
		r.Get("/api/tasks/quota", h.quota)

		r.Get("/api/rewards", h.listRewards)
		r.Post("/api/rewards/redeem", h.redeem)

		r.Get("/api/progress/history", h.history)
		r.Get("/api/progress/summary", h.dailySummary)
		r.Get("/api/leaderboard", h.leaderboard)
	})

	return router
}
