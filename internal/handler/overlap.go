package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/grid"
	"github.com/digennarot/dndScheduler/internal/overlap"
	"github.com/digennarot/dndScheduler/internal/slot"
	amqp "github.com/rabbitmq/amqp091-go"
)

func (h *Handler) participantNames(pollID string) (map[string]string, int, error) {
	participants, err := h.repository.GetParticipantsByPollID(pollID)
	if err != nil {
		return nil, 0, err
	}

	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	return names, len(participants), nil
}

func (h *Handler) aggregatePoll(poll *domain.Poll) ([]*overlap.AggregatedSlot, int, error) {
	names, total, err := h.participantNames(poll.ID)
	if err != nil {
		return nil, 0, err
	}

	records, err := h.repository.GetAvailabilityByPollID(poll.ID)
	if err != nil {
		return nil, 0, err
	}

	keys := poll.SlotKeys()
	agg := overlap.Aggregate(records, keys, names)

	return overlap.Slots(agg, keys), total, nil
}

func (h *Handler) GetOverlap(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	slots, total, err := h.aggregatePoll(poll)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	type overlapSlot struct {
		Date      string   `json:"date"`
		TimeSlot  string   `json:"timeSlot"`
		Count     int      `json:"count"`
		HeatLevel int      `json:"heatLevel"`
		Voters    []string `json:"voters"`
	}

	out := make([]overlapSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, overlapSlot{
			Date:      s.Slot.Date,
			TimeSlot:  s.Slot.Time,
			Count:     s.Count,
			HeatLevel: grid.HeatLevel(s.Count),
			Voters:    s.Voters,
		})
	}

	h.successResponse(w, r, "overlap computed", map[string]any{
		"totalParticipants": total,
		"slots":             out,
	})
}

func (h *Handler) GetBestTimes(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	slots, total, err := h.aggregatePoll(poll)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// the finalize picker shows a longer candidate list than the
	// poll page summary
	topK := overlap.BestTimesTopK
	if r.URL.Query().Get("for") == "finalize" {
		topK = overlap.FinalizeTopK
	}

	ranked := overlap.Rank(slots, total, topK)

	h.successResponse(w, r, "best times computed", ranked)
}

func (h *Handler) FinalizePoll(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	if poll.Status == domain.PollStatusFinalized {
		h.errorResponse(w, r, "poll is already finalized")
		return
	}

	var req struct {
		Date     string `json:"date" validate:"required"`
		TimeSlot string `json:"timeSlot" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	key, err := slot.New(req.Date, req.TimeSlot)
	if err != nil {
		h.errorResponse(w, r, "invalid date or time slot format")
		return
	}
	if !poll.HasSlot(key) {
		h.errorResponse(w, r, "the chosen slot is not part of this poll")
		return
	}

	finalSlot := key.String()
	poll.Status = domain.PollStatusFinalized
	poll.FinalSlot = &finalSlot

	if err := h.repository.UpdatePoll(poll); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ics, err := BuildICS(poll, key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	participants, err := h.repository.GetParticipantsByPollID(poll.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	for _, participant := range participants {
		if participant.Email == nil {
			continue
		}

		mail := domain.MailMessage{
			Type: "invitation",
			To:   *participant.Email,
			Data: domain.InvitationMailData{
				PollTitle:       poll.Title,
				ParticipantName: participant.Name,
				Location:        poll.Location,
				Date:            key.Date,
				TimeOfDay:       key.Time,
				ICS:             ics,
			},
		}

		if err := h.publishMail(mail); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "poll finalized", poll)
}

func (h *Handler) SendReminders(w http.ResponseWriter, r *http.Request) {
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

	responded := make(map[string]bool, len(records))
	for _, record := range records {
		responded[record.ParticipantID] = true
	}

	reminded := 0
	for _, participant := range participants {
		if participant.Email == nil || responded[participant.ID] {
			continue
		}

		mail := domain.MailMessage{
			Type: "reminder",
			To:   *participant.Email,
			Data: domain.ReminderMailData{
				PollTitle:       poll.Title,
				ParticipantName: participant.Name,
				PollURL:         h.config.BaseURL + "/polls/" + poll.ID,
			},
		}

		if err := h.publishMail(mail); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		reminded++
	}

	h.successResponse(w, r, "reminders sent", map[string]any{"reminded": reminded})
}

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	poll := r.Context().Value(PollCtx).(*domain.Poll)

	var key slot.Key
	if slotParam := r.URL.Query().Get("slot"); slotParam != "" {
		parsed, err := slot.Parse(slotParam)
		if err != nil {
			h.errorResponse(w, r, "invalid slot")
			return
		}
		if !poll.HasSlot(parsed) {
			h.errorResponse(w, r, "the chosen slot is not part of this poll")
			return
		}
		key = parsed
	} else {
		if poll.FinalSlot == nil {
			h.errorResponse(w, r, "poll has no finalized slot")
			return
		}
		parsed, err := slot.Parse(*poll.FinalSlot)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		key = parsed
	}

	ics, err := BuildICS(poll, key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="session.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(ics)); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) publishMail(mail domain.MailMessage) error {
	body, err := json.Marshal(mail)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
