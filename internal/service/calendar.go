package service

import (
	"fmt"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

// StatusForDate classifies an ISO 8601 date against the service clock.
func (s *CardService) StatusForDate(date string) (model.Status, error) {
	now := s.now()
	scheduled, err := ParseDate(date, now.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return ClassifyStatus(scheduled, now), nil
}

// DateForLabel resolves a day label at the given batch position against the service clock.
func (s *CardService) DateForLabel(day string, index int) string {
	return FormatDate(ResolveDate(day, index, s.now()))
}
