package handler

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/google/uuid"
)

// joinRateLimit caps how many participant identities one address can
// mint per poll per minute.
const joinRateLimit = 10

func (h *Handler) checkJoinRate(r *http.Request, pollID string) (bool, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	key := fmt.Sprintf("join_rate_%s_%s", pollID, ip)
	count, err := h.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := h.redisClient.Expire(ctx, key, time.Minute).Err(); err != nil {
			return false, err
		}
	}

	return count <= joinRateLimit, nil
}

func (h *Handler) JoinPoll(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	allowed, err := h.checkJoinRate(r, poll.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !allowed {
		h.errorResponse(w, r, "too many join attempts, slow down")
		return
	}

	var req struct {
		Name  string  `json:"name" validate:"required,max=100"`
		Email *string `json:"email" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// rejoining with a known email hands back the existing identity
	// instead of minting a duplicate
	if req.Email != nil {
		existing, err := h.repository.GetParticipantByPollAndEmail(poll.ID, *req.Email)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if existing != nil {
			h.successResponse(w, r, "welcome back", map[string]any{
				"participant": existing,
				"accessToken": existing.AccessToken,
			})
			return
		}
	}

	participant := &domain.Participant{
		ID:          uuid.NewString(),
		PollID:      poll.ID,
		Name:        req.Name,
		Email:       req.Email,
		AccessToken: uuid.NewString(),
	}

	if err := h.repository.CreateParticipant(participant); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "joined poll", map[string]any{
		"participant": participant,
		"accessToken": participant.AccessToken,
	})
}
