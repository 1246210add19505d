package schedule

import "time"

// CancellationLeadTime is how long before a visit cancellations close.
const CancellationLeadTime = 30 * time.Minute

// Clock answers every "today" and "now" question in a single timezone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

// NewFixedClock returns a clock frozen at at.
func NewFixedClock(loc *time.Location, at time.Time) *Clock {
	return &Clock{loc: loc, now: func() time.Time { return at }}
}

func (c *Clock) Location() *time.Location { return c.loc }

func (c *Clock) Now() time.Time { return c.now().In(c.loc) }

func (c *Clock) Today() string { return FormatDate(c.Now()) }

func (c *Clock) IsToday(date string) bool { return date == c.Today() }

// IsPast reports whether date is strictly before today.
func (c *Clock) IsPast(date string) bool { return date < c.Today() }

func (c *Clock) HasSlotElapsed(date string, slot Slot) bool {
	return HasSlotElapsed(date, slot, c.Now(), c.loc)
}

func (c *Clock) CancellationDeadline(date string, slot Slot) (time.Time, error) {
	return CancellationDeadline(date, slot, c.loc)
}

func (c *Clock) CanCancel(date string, slot Slot) (bool, error) {
	return CanCancel(date, slot, c.Now(), c.loc)
}

// HasSlotElapsed is true only on today's date once now has reached the slot start.
func HasSlotElapsed(date string, slot Slot, now time.Time, loc *time.Location) bool {
	now = now.In(loc)
	if date != FormatDate(now) {
		return false
	}
	start, err := DateTimeOf(date, slot, loc)
	if err != nil {
		return false
	}
	return !now.Before(start)
}

func CancellationDeadline(date string, slot Slot, loc *time.Location) (time.Time, error) {
	start, err := DateTimeOf(date, slot, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-CancellationLeadTime), nil
}

// CanCancel allows cancellation strictly before the deadline.
func CanCancel(date string, slot Slot, now time.Time, loc *time.Location) (bool, error) {
	deadline, err := CancellationDeadline(date, slot, loc)
	if err != nil {
		return false, err
	}
	return now.Before(deadline), nil
}
