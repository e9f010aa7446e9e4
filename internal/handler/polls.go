package handler

import (
	"net/http"
	"slices"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/planner"
	"github.com/google/uuid"
)

type pollRequest struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Location    string              `json:"location" validate:"max=200"`
	Duration    int32               `json:"duration" validate:"omitempty,min=15,max=720"`
	Dates       []string            `json:"dates" validate:"required"`
	TimeSlots   map[string][]string `json:"timeSlots"`
	TimeRange   []string            `json:"timeRange"` // legacy clients send one flat list for every date
}

// buildSchedule runs a poll request through the planner so that the stored
// configuration is always normalized: dates sorted, times sorted and
// deduplicated, dates without any selected time dropped.
func (h *Handler) buildSchedule(req *pollRequest) ([]string, map[string][]string, error) {
	dates := slices.Clone(req.Dates)
	slices.Sort(dates)
	dates = slices.Compact(dates)

	builder, err := planner.NewBuilder(dates)
	if err != nil {
		return nil, nil, err
	}

	if len(req.TimeRange) > 0 && len(req.TimeSlots) == 0 {
		for _, date := range builder.Dates() {
			for _, timeOfDay := range req.TimeRange {
				if err := builder.Toggle(date, timeOfDay); err != nil {
					return nil, nil, err
				}
			}
		}
	} else {
		for date, times := range req.TimeSlots {
			for _, timeOfDay := range times {
				if err := builder.Toggle(date, timeOfDay); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	if err := builder.Validate(); err != nil {
		return nil, nil, err
	}

	dates, times := builder.TimeSlots()
	return dates, times, nil
}

func (h *Handler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	organizer := r.Context().Value(OrganizerCtx).(*domain.Organizer)

	var req pollRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dates, times, err := h.buildSchedule(&req)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	duration := req.Duration
	if duration == 0 {
		duration = 180
	}

	poll := &domain.Poll{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		OrganizerID: organizer.ID,
		Duration:    duration,
		Dates:       dates,
		TimeSlots:   times,
		Status:      domain.PollStatusActive,
	}

	if err := h.repository.CreatePoll(poll); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "poll created", poll)
}

func (h *Handler) GetMyPolls(w http.ResponseWriter, r *http.Request) {
	organizer := r.Context().Value(OrganizerCtx).(*domain.Organizer)

	polls, err := h.repository.GetPollsByOrganizerID(organizer.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "polls fetched", polls)
}

func (h *Handler) GetPollDetails(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	participants, err := h.repository.GetParticipantsByPollID(poll.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	records, err := h.repository.GetAvailabilityByPollID(poll.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "poll fetched", map[string]any{
		"poll":         poll,
		"participants": participants,
		"availability": records,
	})
}

func (h *Handler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	if poll.Status == domain.PollStatusFinalized {
		h.errorResponse(w, r, "poll is already finalized")
		return
	}

	var req pollRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dates, times, err := h.buildSchedule(&req)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	poll.Title = req.Title
	poll.Description = req.Description
	poll.Location = req.Location
	if req.Duration != 0 {
		poll.Duration = req.Duration
	}
	poll.Dates = dates
	poll.TimeSlots = times

	if err := h.repository.UpdatePoll(poll); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "poll updated", poll)
}

func (h *Handler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	if err := h.repository.DeletePoll(poll.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "poll deleted", nil)
}
