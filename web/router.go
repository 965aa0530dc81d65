package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/fabianojp06/pelada-hero/controller"
)

func getRouter(ctrl controller.C, render *render.Render, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	// Everything else requires an authenticated user.
	r.Group(func(r chi.Router) {
		r.Use(requireUser(jwtSecret, render))

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", listMatchesHandler(ctrl, render))
			r.Post("/", createMatchHandler(ctrl, render))

			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", getMatchHandler(ctrl, render))
				r.Put("/", updateMatchHandler(ctrl, render))
				r.Delete("/", deleteMatchHandler(ctrl, render))

				r.Post("/join", joinMatchHandler(ctrl, render))
				r.Post("/leave", leaveMatchHandler(ctrl, render))
				r.Get("/teams", sortTeamsHandler(ctrl, render))

				r.Route("/participants/{participationID}", func(r chi.Router) {
					r.Post("/approve", approveParticipantHandler(ctrl, render))
					r.Post("/reject", rejectParticipantHandler(ctrl, render))
					r.Post("/payment", togglePaymentHandler(ctrl, render))
				})

				r.Get("/feed", listFeedHandler(ctrl, render))
				r.Post("/feed", addFeedPostHandler(ctrl, render))
			})
		})

		r.Post("/posts/{postID}/reactions", reactToPostHandler(ctrl, render))

		r.Get("/players/{playerID}", getPlayerHandler(ctrl, render))
		r.Get("/my/matches", myMatchesHandler(ctrl, render))
	})

	return r
}
