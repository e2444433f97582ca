package main

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/config"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/httputil"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/middleware"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/schedule"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/service"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/store"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/utils"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
)

type createTournamentRequest struct {
	Name        string              `json:"name"`
	StartTime   string              `json:"start_time"`
	PitchPrefix string              `json:"pitch_prefix"`
	Teams       []service.TeamInput `json:"teams"`
}

type advanceRequest struct {
	StartTime string `json:"start_time"`
}

type marshallRequest struct {
	Name string `json:"name"`
}

func newRouter(cfg config.Config, dbConn *sqlx.DB, scheduler *schedule.Scheduler) http.Handler {
	tournamentStore := store.NewTournamentStore(dbConn)
	tournamentService := service.NewTournamentService(dbConn, tournamentStore, scheduler)
	matchService := service.NewMatchService(dbConn, tournamentStore, store.NewMarshallStore(dbConn), scheduler)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := tournamentService.GetTournaments(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get tournaments", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, tournaments)
	})

	r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		var req createTournamentRequest
		if err := httputil.DecodeJSON(w, r, &req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}
		startTime, err := httputil.ParseTime(req.StartTime, time.Local)
		if err != nil {
			httputil.BadRequest(w, err.Error(), err)
			return
		}

		id, err := tournamentService.CreateTournament(r.Context(), service.TournamentInput{
			Name:        req.Name,
			StartTime:   startTime,
			PitchPrefix: utils.OrDefault(req.PitchPrefix, cfg.PitchPrefix),
			Teams:       req.Teams,
		})
		if err != nil {
			writeServiceError(w, "Failed to create tournament", err)
			return
		}
		w.Header().Set("Location", "/tournaments/"+id.String())
		httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
	})

	r.Route("/tournaments/{id}", func(r chi.Router) {
		r.Use(middleware.RequireID("id", middleware.TournamentIDKey))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			id, _ := middleware.GetIDFromContext(r.Context(), middleware.TournamentIDKey)
			data, err := tournamentService.GetTournamentData(r.Context(), id.String())
			if err != nil {
				writeServiceError(w, "Failed to get tournament", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, data)
		})

		r.Get("/standings", func(w http.ResponseWriter, r *http.Request) {
			id, _ := middleware.GetIDFromContext(r.Context(), middleware.TournamentIDKey)
			standings, err := tournamentService.GetStandings(r.Context(), id.String())
			if err != nil {
				writeServiceError(w, "Failed to get standings", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, standings)
		})

		r.Post("/advance", func(w http.ResponseWriter, r *http.Request) {
			id, _ := middleware.GetIDFromContext(r.Context(), middleware.TournamentIDKey)
			var req advanceRequest
			if r.ContentLength != 0 {
				if err := httputil.DecodeJSON(w, r, &req); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
			}
			startTime, err := httputil.ParseTime(req.StartTime, time.Local)
			if err != nil {
				httputil.BadRequest(w, err.Error(), err)
				return
			}

			result, err := matchService.AdvanceRound(r.Context(), id, startTime)
			if err != nil {
				writeServiceError(w, "Failed to advance round", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, result)
		})
	})

	r.Route("/matches/{id}", func(r chi.Router) {
		r.Use(middleware.RequireID("id", middleware.MatchIDKey))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			id, _ := middleware.GetIDFromContext(r.Context(), middleware.MatchIDKey)
			data, err := matchService.GetMatchViewData(r.Context(), id.String())
			if err != nil {
				writeServiceError(w, "Failed to get match data", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, data)
		})

		r.Post("/score", func(w http.ResponseWriter, r *http.Request) {
			id, _ := middleware.GetIDFromContext(r.Context(), middleware.MatchIDKey)
			var input service.ScoreInput
			if err := httputil.DecodeJSON(w, r, &input); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			match, err := matchService.RecordScore(r.Context(), id, input)
			if err != nil {
				writeServiceError(w, "Failed to record score", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, match)
		})

		r.Post("/marshall", func(w http.ResponseWriter, r *http.Request) {
			id, _ := middleware.GetIDFromContext(r.Context(), middleware.MatchIDKey)
			var req marshallRequest
			if err := httputil.DecodeJSON(w, r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			match, err := matchService.AssignMarshall(r.Context(), id, req.Name)
			if err != nil {
				writeServiceError(w, "Failed to assign marshall", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, match)
		})
	})

	r.Get("/marshalls", func(w http.ResponseWriter, r *http.Request) {
		marshalls, err := matchService.GetMarshalls(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get marshalls", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, marshalls)
	})

	return r
}

// writeServiceError maps service and domain errors onto status codes. Anything
// unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, "Not found", err)
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, bracket.ErrInvalidScore),
		errors.Is(err, schedule.ErrMalformedRecord):
		httputil.BadRequest(w, err.Error(), err)
	case errors.Is(err, service.ErrRoundNotComplete),
		errors.Is(err, service.ErrRoundAlreadyAdvanced),
		errors.Is(err, service.ErrRoundLocked),
		errors.Is(err, service.ErrTournamentCompleted),
		errors.Is(err, service.ErrNothingToSchedule):
		httputil.Conflict(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}
