package businessflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/models"
)

// ParticipantRange buckets an exact participant count into a coarse label so
// public surfaces never expose small exact counts.
func ParticipantRange(count int64) string {
	switch {
	case count <= 0:
		return "0"
	case count < 10:
		return "1-9"
	case count < 50:
		return "10-49"
	case count < 100:
		return "50-99"
	default:
		return "100+"
	}
}

// BuildImpactStats aggregates a set of log entries into windowed impact
// statistics. The caller is responsible for restricting logs to the window.
func BuildImpactStats(logs []*models.UserActionLog, windowDays int) dto.ImpactStatsDTO {
	stats := dto.ImpactStatsDTO{WindowDays: windowDays}

	participants := make(map[uuid.UUID]struct{})
	var lastAt *time.Time

	for _, log := range logs {
		stats.TotalActions++

		switch log.Status {
		case models.ActionLogStatusCompleted:
			stats.CompletedActions++
		case models.ActionLogStatusSkipped:
			stats.SkippedActions++
		}

		switch log.ActionType {
		case models.ActionTypeCall:
			stats.Calls++
		case models.ActionTypeEmail:
			stats.Emails++
		case models.ActionTypeBoycott:
			stats.Boycotts++
		case models.ActionTypeEvent:
			stats.Events++
		}

		participants[log.UserID] = struct{}{}

		if lastAt == nil || log.CreatedAt.After(*lastAt) {
			t := log.CreatedAt
			lastAt = &t
		}
	}

	stats.UniqueParticipants = int64(len(participants))
	stats.ParticipantRange = ParticipantRange(stats.UniqueParticipants)

	if lastAt != nil {
		formatted := lastAt.UTC().Format(time.RFC3339)
		stats.LastActionAt = &formatted
	}

	return stats
}

// BuildUserStats aggregates a single user's log entries into windowed
// statistics for the personal stats and share card surfaces.
func BuildUserStats(logs []*models.UserActionLog, windowDays int) dto.UserStatsDTO {
	stats := dto.UserStatsDTO{WindowDays: windowDays}

	var lastAt *time.Time

	for _, log := range logs {
		stats.TotalActions++

		switch log.Status {
		case models.ActionLogStatusCompleted:
			stats.CompletedActions++
		case models.ActionLogStatusSkipped:
			stats.SkippedActions++
		}

		switch log.ActionType {
		case models.ActionTypeCall:
			stats.Calls++
		case models.ActionTypeEmail:
			stats.Emails++
		case models.ActionTypeBoycott:
			stats.Boycotts++
		case models.ActionTypeEvent:
			stats.Events++
		}

		if lastAt == nil || log.CreatedAt.After(*lastAt) {
			t := log.CreatedAt
			lastAt = &t
		}
	}

	if lastAt != nil {
		formatted := lastAt.UTC().Format(time.RFC3339)
		stats.LastActionAt = &formatted
	}

	return stats
}
