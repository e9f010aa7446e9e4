package handler

import (
	"net/http"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

func (h *Handler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)
	participant := r.Context().Value(ParticipantCtx).(*domain.Participant)

	var req struct {
		Availability []struct {
			Date     string                    `json:"date" validate:"required"`
			TimeSlot string                    `json:"timeSlot" validate:"required"`
			Status   domain.AvailabilityStatus `json:"status" validate:"required"`
		} `json:"availability" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// reject before validation so the caller gets the specific message
	if len(req.Availability) == 0 {
		h.errorResponse(w, r, "mark at least one time slot before submitting")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	records := make([]*domain.AvailabilityRecord, 0, len(req.Availability))
	for _, entry := range req.Availability {
		// entries outside the configured schedule are stored as-is,
		// the aggregation side buckets them on read
		if _, err := slot.New(entry.Date, entry.TimeSlot); err != nil {
			h.errorResponse(w, r, "invalid date or time slot format")
			return
		}
		if !entry.Status.Valid() {
			h.errorResponse(w, r, "invalid availability status")
			return
		}
		records = append(records, &domain.AvailabilityRecord{
			Date:     entry.Date,
			TimeSlot: entry.TimeSlot,
			Status:   entry.Status,
		})
	}

	if err := h.repository.ReplaceAvailability(poll.ID, participant.ID, records); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability submitted", records)
}

func (h *Handler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)
	participant := r.Context().Value(ParticipantCtx).(*domain.Participant)

	records, err := h.repository.GetAvailabilityByParticipant(poll.ID, participant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability fetched", records)
}
