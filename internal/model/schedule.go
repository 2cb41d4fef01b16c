package model

// DayToday is the literal day label meaning "the current date".
const DayToday = "today"

// Symbolic month buckets accepted as day labels.
const (
	DayEarlyMonth = "early_month"
	DayMidMonth   = "mid_month"
	DayLateMonth  = "late_month"
)

// ScheduleSlot is one entry of a weekly schedule. Order within the schedule is significant.
type ScheduleSlot struct {
	Day      string       `json:"day"`
	Time     string       `json:"time"`
	Type     CampaignType `json:"type"`
	Audience string       `json:"audience"`
	Theme    string       `json:"theme"`
}
