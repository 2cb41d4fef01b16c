package service

import (
	"math"
	"time"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

// scheduledWindowDays is the inclusive distance at which a campaign counts as imminent.
const scheduledWindowDays = 2

// ClassifyStatus derives a card's lifecycle status from its scheduled date relative to now.
// Status is always recomputed, never stored as ground truth.
func ClassifyStatus(scheduled, now time.Time) model.Status {
	daysDiff := math.Ceil(scheduled.Sub(now).Hours() / 24)

	switch {
	case daysDiff < 0:
		return model.StatusActive
	case daysDiff <= scheduledWindowDays:
		return model.StatusScheduled
	default:
		return model.StatusDraft
	}
}
