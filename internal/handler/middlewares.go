package handler

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog mangles multi-line stacks
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("__dnd_scheduler_token")
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "not logged in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), SubCtxKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) organizerInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := strconv.ParseInt(subString, 10, 64)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		organizer, err := h.repository.GetOrganizerByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "organizer not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), OrganizerCtx, organizer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) poll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pollIDParam := chi.URLParam(r, "pollID")
		if _, err := uuid.Parse(pollIDParam); err != nil {
			h.errorResponse(w, r, "invalid poll id")
			return
		}

		poll, err := h.repository.GetPollByID(pollIDParam)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "poll not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), PollCtx, poll)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) participant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		poll := r.Context().Value(PollCtx).(*domain.Poll)

		participantIDParam := chi.URLParam(r, "participantID")
		participant, err := h.repository.GetParticipantByID(participantIDParam)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "participant not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		if participant.PollID != poll.ID {
			h.errorResponse(w, r, "participant not found")
			return
		}

		ctx := context.WithValue(r.Context(), ParticipantCtx, participant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) participantToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		participant := r.Context().Value(ParticipantCtx).(*domain.Participant)

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			h.errorResponse(w, r, "missing access token")
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(participant.AccessToken)) != 1 {
			h.errorResponse(w, r, "invalid access token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requirePollOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		poll := r.Context().Value(PollCtx).(*domain.Poll)
		organizer := r.Context().Value(OrganizerCtx).(*domain.Organizer)

		if poll.OrganizerID != organizer.ID {
			h.errorResponse(w, r, "not the organizer of this poll")
			return
		}

		next.ServeHTTP(w, r)
	})
}
