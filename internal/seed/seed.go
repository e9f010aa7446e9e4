package seed

import (
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/repository"
	"github.com/digennarot/dndScheduler/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var demoTimeSlots = []string{"14:00", "16:00", "18:00", "19:00", "20:00"}

const demoOrganizerUsername = "demo-dm"

func demoDates(n int) []string {
	dates := make([]string, 0, n)
	day := time.Now().AddDate(0, 0, 7)
	for i := 0; i < n; i++ {
		dates = append(dates, day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

func ensureDemoOrganizer(r *repository.Repository, password string) (*domain.Organizer, error) {
	organizer, err := r.GetOrganizerByUsername(demoOrganizerUsername)
	if err == nil {
		return organizer, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	organizer = &domain.Organizer{
		Username:     demoOrganizerUsername,
		PasswordHash: string(passwordHash),
		FullName:     "Demo Dungeon Master",
		Email:        "demo-dm@example.com",
	}
	if err := r.CreateOrganizer(organizer); err != nil {
		return nil, err
	}

	return organizer, nil
}

// SeedDemoData inserts an organizer, a handful of polls with per-day time
// slots, participants, and availability submissions, so the overlap and
// ranking endpoints have something to chew on right after first deploy.
func SeedDemoData(r *repository.Repository, organizerPassword string, pollCount int, participantsPerPoll int) {
	organizer, err := ensureDemoOrganizer(r, organizerPassword)
	if err != nil {
		slog.Error("failed to ensure demo organizer", "error", err)
		return
	}

	for i := 0; i < pollCount; i++ {
		dates := demoDates(rand.Intn(3) + 3)

		timeSlots := make(map[string][]string, len(dates))
		for _, date := range dates {
			n := rand.Intn(3) + 2
			timeSlots[date] = demoTimeSlots[:n]
		}

		poll := &domain.Poll{
			ID:          uuid.NewString(),
			Title:       utils.GenerateRandomPollTitle(),
			Description: "Weekly session planning",
			Location:    "The usual table",
			OrganizerID: organizer.ID,
			Duration:    180,
			Dates:       dates,
			TimeSlots:   timeSlots,
			Status:      domain.PollStatusActive,
		}

		if err := r.CreatePoll(poll); err != nil {
			slog.Error("failed to insert poll", "error", err)
			continue
		}

		for j := 0; j < participantsPerPoll; j++ {
			name := utils.GenerateRandomParticipantName()
			email := utils.GenerateEmailFromName(name, "example.com")

			participant := &domain.Participant{
				ID:          uuid.NewString(),
				PollID:      poll.ID,
				Name:        name,
				Email:       &email,
				AccessToken: uuid.NewString(),
			}

			if err := r.CreateParticipant(participant); err != nil {
				slog.Error("failed to insert participant", "error", err)
				continue
			}

			records := randomAvailability(poll)
			if len(records) == 0 {
				continue
			}

			if err := r.ReplaceAvailability(poll.ID, participant.ID, records); err != nil {
				slog.Error("failed to insert availability", "error", err)
			}
		}
	}

	slog.Info("demo data inserted", "polls", pollCount)
}

func randomAvailability(poll *domain.Poll) []*domain.AvailabilityRecord {
	records := []*domain.AvailabilityRecord{}

	for _, date := range poll.Dates {
		for _, timeOfDay := range poll.TimeSlots[date] {
			switch rand.Intn(4) {
			case 0:
				records = append(records, &domain.AvailabilityRecord{
					Date:     date,
					TimeSlot: timeOfDay,
					Status:   domain.StatusAvailable,
				})
			case 1:
				records = append(records, &domain.AvailabilityRecord{
					Date:     date,
					TimeSlot: timeOfDay,
					Status:   domain.StatusTentative,
				})
			}
		}
	}

	return records
}
