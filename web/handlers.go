package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/fabianojp06/pelada-hero/controller"
	"github.com/fabianojp06/pelada-hero/db"
	"github.com/fabianojp06/pelada-hero/model"
)

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "pelada-hero")
	}
}

type matchRequest struct {
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Address        string    `json:"address"`
	Date           time.Time `json:"date"`
	Price          int       `json:"price"`
	PlayersPerSide int       `json:"playersPerSide"`
	Public         bool      `json:"public"`
}

func (req *matchRequest) toModel(id string) *model.Match {
	return &model.Match{
		ID:             id,
		Title:          req.Title,
		Location:       req.Location,
		Address:        req.Address,
		Date:           req.Date,
		Price:          req.Price,
		PlayersPerSide: req.PlayersPerSide,
		Public:         req.Public,
	}
}

func listMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicOnly := r.URL.Query().Get("public") != "false"

		matches, err := ctrl.ListMatches(r.Context(), publicOnly)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func createMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		m, err := ctrl.CreateMatch(r.Context(), req.toModel(""), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, m)
	}
}

func getMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := ctrl.GetMatch(r.Context(), chi.URLParam(r, "matchID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, details)
	}
}

func updateMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		m, err := ctrl.UpdateMatch(r.Context(), req.toModel(chi.URLParam(r, "matchID")), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, m)
	}
}

func deleteMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteMatch(r.Context(), chi.URLParam(r, "matchID"), userID(r)); err != nil {
			writeError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func joinMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.JoinMatch(r.Context(), chi.URLParam(r, "matchID"), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, p)
	}
}

func leaveMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.LeaveMatch(r.Context(), chi.URLParam(r, "matchID"), userID(r)); err != nil {
			writeError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func sortTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := model.ParseSortMode(r.URL.Query().Get("mode"))

		draw, err := ctrl.SortTeams(r.Context(), chi.URLParam(r, "matchID"), mode)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, draw)
	}
}

func approveParticipantHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ctrl.ApproveParticipant(r.Context(),
			chi.URLParam(r, "matchID"), chi.URLParam(r, "participationID"), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func rejectParticipantHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ctrl.RejectParticipant(r.Context(),
			chi.URLParam(r, "matchID"), chi.URLParam(r, "participationID"), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func togglePaymentHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ctrl.TogglePayment(r.Context(),
			chi.URLParam(r, "matchID"), chi.URLParam(r, "participationID"), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listFeedHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := ctrl.ListFeed(r.Context(), chi.URLParam(r, "matchID"), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, posts)
	}
}

func addFeedPostHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content  string `json:"content"`
			ImageURL string `json:"imageUrl"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		post, err := ctrl.AddFeedPost(r.Context(), chi.URLParam(r, "matchID"), userID(r), req.Content, req.ImageURL)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, post)
	}
}

func reactToPostHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Kind string `json:"kind"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		kind := model.ParseReactionKind(req.Kind)
		if kind == model.ReactionUnknown {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown reaction kind"})
			return
		}

		result, err := ctrl.ReactToPost(r.Context(), chi.URLParam(r, "postID"), userID(r), kind)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"reaction": string(result)})
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func myMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := ctrl.ListUserMatches(r.Context(), userID(r))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

// writeError maps the failure kinds to status codes. Anything unrecognized is
// a 500 so bugs don't hide behind client errors.
func writeError(render *render.Render, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, controller.ErrAlreadyJoined),
		errors.Is(err, controller.ErrMatchFull),
		errors.Is(err, controller.ErrStoreConflict):
		status = http.StatusConflict
	case errors.Is(err, controller.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, controller.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, controller.ErrNotJoined),
		errors.Is(err, db.ErrMatchNotFound),
		errors.Is(err, db.ErrPlayerNotFound),
		errors.Is(err, db.ErrPostNotFound),
		errors.Is(err, db.ErrParticipationNotFound):
		status = http.StatusNotFound
	}
	render.JSON(w, status, map[string]string{"error": err.Error()})
}
