package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidSlot    = errors.New("invalid slot")
	ErrInvalidCatalog = errors.New("invalid slot catalog")
)

// Slot is a bookable time of day in "HH:MM" form.
type Slot string

type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
)

// Minutes returns the minutes since midnight of a well-formed slot.
func (s Slot) Minutes() int {
	h, m, err := splitClock(string(s))
	if err != nil {
		return -1
	}
	return h*60 + m
}

func (s Slot) String() string { return string(s) }

var defaultSlots = []string{
	"08:45", "09:00", "09:15", "09:30", "09:45", "10:00",
	"10:15", "10:30", "10:45", "11:00", "11:15", "11:30",
	"14:00", "14:15", "14:30", "14:45", "15:00", "15:15",
	"15:30", "15:45", "16:00", "16:15", "16:30", "16:45",
}

// Catalog is the ordered, immutable set of bookable slots.
type Catalog struct {
	slots []Slot
	index map[Slot]int
}

// DefaultCatalog returns the 24-slot catalog: 08:45-11:30 and 14:00-16:45 every 15 minutes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultSlots)
	if err != nil {
		panic(err)
	}
	return c
}

// NewCatalog builds a catalog from clock values. Values are normalized and
// must be unique; the resulting order is ascending by time of day.
func NewCatalog(values []string) (*Catalog, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no slots", ErrInvalidCatalog)
	}

	c := &Catalog{
		slots: make([]Slot, 0, len(values)),
		index: make(map[Slot]int, len(values)),
	}
	for _, v := range values {
		s, err := normalizeClock(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCatalog, v)
		}
		if _, dup := c.index[s]; dup {
			return nil, fmt.Errorf("%w: duplicate slot %s", ErrInvalidCatalog, s)
		}
		c.index[s] = -1
		c.slots = append(c.slots, s)
	}

	sortSlots(c.slots)
	for i, s := range c.slots {
		c.index[s] = i
	}
	return c, nil
}

// ParseCatalog reads a comma separated list such as "09:15,15:00".
func ParseCatalog(raw string) (*Catalog, error) {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return NewCatalog(values)
}

func (c *Catalog) IsValid(value string) bool {
	_, ok := c.index[Slot(value)]
	return ok
}

// Normalize zero-pads a loose clock value ("9:5" -> "09:05") and checks it
// against the catalog.
func (c *Catalog) Normalize(raw string) (Slot, error) {
	s, err := normalizeClock(raw)
	if err != nil {
		return "", err
	}
	if _, ok := c.index[s]; !ok {
		return "", ErrInvalidSlot
	}
	return s, nil
}

// PeriodOf classifies a slot: anything before noon is morning.
func (c *Catalog) PeriodOf(s Slot) Period {
	return PeriodOf(s)
}

func PeriodOf(s Slot) Period {
	if s.Minutes() < 12*60 {
		return PeriodMorning
	}
	return PeriodAfternoon
}

func (c *Catalog) All() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c *Catalog) InPeriod(p Period) []Slot {
	out := make([]Slot, 0, len(c.slots))
	for _, s := range c.slots {
		if PeriodOf(s) == p {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) Len() int { return len(c.slots) }

// Strings returns the slots as plain strings, in catalog order.
func (c *Catalog) Strings() []string {
	out := make([]string, len(c.slots))
	for i, s := range c.slots {
		out[i] = string(s)
	}
	return out
}

func normalizeClock(raw string) (Slot, error) {
	h, m, err := splitClock(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return Slot(fmt.Sprintf("%02d:%02d", h, m)), nil
}

func splitClock(v string) (int, int, error) {
	hs, ms, ok := strings.Cut(v, ":")
	if !ok || len(hs) == 0 || len(hs) > 2 || len(ms) == 0 || len(ms) > 2 || !allDigits(hs) || !allDigits(ms) {
		return 0, 0, ErrInvalidSlot
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, ErrInvalidSlot
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, ErrInvalidSlot
	}
	return h, m, nil
}

func sortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Minutes() < slots[j].Minutes()
	})
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
