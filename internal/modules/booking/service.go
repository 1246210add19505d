package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"diligencias/internal/domain"
	"diligencias/internal/pkg/validator"
	"diligencias/internal/repository"
	"diligencias/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	appointments AppointmentRepository
	days         UnavailabilityReader
	receipts     ReceiptChecker
	audit        AuditLogWriter
	holidays     HolidayChecker
	events       EventPublisher
	catalog      *schedule.Catalog
	clock        *schedule.Clock
	log          *zap.Logger
}

// NewService accepts nil holidays and events to skip those steps.
func NewService(
	appointments AppointmentRepository,
	days UnavailabilityReader,
	receipts ReceiptChecker,
	audit AuditLogWriter,
	holidays HolidayChecker,
	events EventPublisher,
	catalog *schedule.Catalog,
	clock *schedule.Clock,
	log *zap.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		days:         days,
		receipts:     receipts,
		audit:        audit,
		holidays:     holidays,
		events:       events,
		catalog:      catalog,
		clock:        clock,
		log:          log,
	}
}

// CreateBooking runs the booking pipeline and stops at the first failing
// check. The store re-checks slot and day at commit time.
func (s *Service) CreateBooking(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	a, err := s.buildAppointment(req)
	if err != nil {
		return nil, err
	}

	if schedule.IsWeekend(a.Date) {
		return nil, ErrWeekend
	}
	if s.clock.IsPast(a.Date) {
		return nil, ErrPastDate
	}
	if s.clock.HasSlotElapsed(a.Date, schedule.Slot(a.Slot)) {
		return nil, ErrSlotElapsed
	}

	blocked, err := s.days.GetByDate(ctx, a.Date)
	if err != nil {
		return nil, fmt.Errorf("check unavailability: %w", err)
	}
	if blocked != nil {
		return nil, ErrDayUnavailable
	}
	if s.isHoliday(ctx, a.Date) {
		return nil, ErrHoliday
	}

	taken, err := s.appointments.IsSlotTaken(ctx, a.Date, a.Slot)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrSlotTaken
		case errors.Is(err, repository.ErrDayBlocked):
			return nil, ErrDayUnavailable
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info("appointment created",
		zap.String("appointment_id", a.ID),
		zap.String("date", a.Date),
		zap.String("slot", a.Slot))

	s.writeAudit(ctx, domain.ActionAppointmentCreated, a, fmt.Sprintf("Agendamento para %s às %s", a.Date, a.Slot))
	if s.events != nil {
		s.events.AppointmentCreated(ctx, a)
	}
	return a, nil
}

// CancelBooking cancels a scheduled visit while its cancellation window is open.
func (s *Service) CancelBooking(ctx context.Context, id, actor string) (*domain.Appointment, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkScheduled(a); err != nil {
		return nil, err
	}

	ok, err := s.clock.CanCancel(a.Date, schedule.Slot(a.Slot))
	if err != nil {
		return nil, fmt.Errorf("cancellation deadline: %w", err)
	}
	if !ok {
		return nil, ErrCancellationClosed
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = domain.DefaultCanceller
	}

	cancelled, err := s.appointments.Cancel(ctx, a.ID, actor, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, ErrStatusChanged
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	s.log.Info("appointment cancelled",
		zap.String("appointment_id", cancelled.ID),
		zap.String("cancelled_by", actor))

	s.writeAudit(ctx, domain.ActionAppointmentCancelled, cancelled, "Cancelado por: "+actor)
	if s.events != nil {
		s.events.AppointmentCancelled(ctx, cancelled)
	}
	return cancelled, nil
}

// CompleteBooking stores the receipt and marks the visit completed in one
// transaction.
func (s *Service) CompleteBooking(ctx context.Context, id string, amount float64) (*CompletionResult, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, ErrInvalidAmount
	}
	amount = math.Round(amount*100) / 100
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkScheduled(a); err != nil {
		return nil, err
	}

	exists, err := s.receipts.ExistsForAppointment(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("check receipt: %w", err)
	}
	if exists {
		return nil, ErrReceiptExists
	}

	receipt := &domain.Receipt{ID: uuid.NewString(), Amount: amount}
	completed, err := s.appointments.Complete(ctx, a.ID, receipt, s.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusChanged):
			return nil, ErrStatusChanged
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrReceiptExists
		}
		return nil, fmt.Errorf("complete appointment: %w", err)
	}

	s.log.Info("appointment completed",
		zap.String("appointment_id", completed.ID),
		zap.String("receipt_id", receipt.ID),
		zap.Float64("amount", amount))

	s.writeAudit(ctx, domain.ActionAppointmentCompleted, completed, fmt.Sprintf("Diligência concluída. Valor: R$ %.2f", amount))
	if s.events != nil {
		s.events.AppointmentCompleted(ctx, completed, amount)
	}
	return &CompletionResult{Appointment: completed, Receipt: receipt}, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Appointment, error) {
	f := domain.AppointmentFilter{
		Status: domain.AppointmentStatus(strings.TrimSpace(q.Status)),
		From:   strings.TrimSpace(q.From),
		To:     strings.TrimSpace(q.To),
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if (f.From != "" && !schedule.ValidDate(f.From)) || (f.To != "" && !schedule.ValidDate(f.To)) {
		return nil, ErrInvalidDate
	}
	return s.appointments.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (*AppointmentDetails, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	deadline, err := s.clock.CancellationDeadline(a.Date, schedule.Slot(a.Slot))
	if err != nil {
		return nil, fmt.Errorf("cancellation deadline: %w", err)
	}
	return &AppointmentDetails{
		Appointment:          *a,
		CancellationDeadline: deadline,
		CanCancel:            a.IsScheduled() && s.clock.Now().Before(deadline),
	}, nil
}

// DriverAgenda lists scheduled visits from today on, split into today and later.
func (s *Service) DriverAgenda(ctx context.Context) (*DriverAgenda, error) {
	today := s.clock.Today()
	visits, err := s.appointments.ListScheduled(ctx, today, "")
	if err != nil {
		return nil, err
	}

	out := &DriverAgenda{
		Today:    make([]domain.Appointment, 0),
		Upcoming: make([]domain.Appointment, 0),
		Total:    len(visits),
	}
	for _, v := range visits {
		if v.Date == today {
			out.Today = append(out.Today, v)
		} else {
			out.Upcoming = append(out.Upcoming, v)
		}
	}
	return out, nil
}

func (s *Service) get(ctx context.Context, id string) (*domain.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func checkScheduled(a *domain.Appointment) error {
	switch a.Status {
	case domain.AppointmentCancelled:
		return ErrAlreadyCancelled
	case domain.AppointmentCompleted:
		return ErrAlreadyCompleted
	}
	return nil
}

func (s *Service) buildAppointment(req CreateAppointmentRequest) (*domain.Appointment, error) {
	a := &domain.Appointment{
		ID:            uuid.NewString(),
		RequesterName: strings.TrimSpace(req.RequesterName),
		Date:          strings.TrimSpace(req.Date),
		CEP:           strings.TrimSpace(req.CEP),
		Street:        strings.TrimSpace(req.Street),
		Number:        strings.TrimSpace(req.Number),
		Complement:    strings.TrimSpace(req.Complement),
		District:      strings.TrimSpace(req.District),
		City:          strings.TrimSpace(req.City),
		State:         strings.ToUpper(strings.TrimSpace(req.State)),
		Notes:         strings.TrimSpace(req.Notes),
		Status:        domain.AppointmentScheduled,
	}

	if a.RequesterName == "" || a.Date == "" || strings.TrimSpace(req.Slot) == "" ||
		a.Street == "" || a.Number == "" || a.District == "" || a.City == "" {
		return nil, ErrMissingFields
	}
	if !schedule.ValidDate(a.Date) {
		return nil, ErrInvalidDate
	}
	slot, err := s.catalog.Normalize(req.Slot)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	a.Slot = slot.String()

	if !validator.IsCEP(a.CEP) {
		return nil, ErrInvalidCEP
	}
	a.CEP = formatCEP(a.CEP)

	if len(a.State) != 2 || !isLetters(a.State) {
		return nil, ErrInvalidState
	}
	return a, nil
}

func (s *Service) isHoliday(ctx context.Context, date string) bool {
	if s.holidays == nil {
		return false
	}
	h, err := s.holidays.On(ctx, date)
	if err != nil {
		s.log.Warn("holiday check skipped", zap.String("date", date), zap.Error(err))
		return false
	}
	return h != nil
}

func (s *Service) writeAudit(ctx context.Context, action domain.AuditAction, a *domain.Appointment, details string) {
	id := a.ID
	entry := &domain.AuditLog{
		ID:            uuid.NewString(),
		Action:        action,
		AppointmentID: &id,
		Actor:         a.RequesterName,
		Details:       details,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.log.Error("audit log write failed",
			zap.String("action", string(action)),
			zap.String("appointment_id", a.ID),
			zap.Error(err))
	}
}

// formatCEP turns 88015200 into 88015-200.
func formatCEP(cep string) string {
	digits := strings.ReplaceAll(cep, "-", "")
	return digits[:5] + "-" + digits[5:]
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
