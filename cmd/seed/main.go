package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"diligencias/internal/config"
	"diligencias/internal/database"
	"diligencias/internal/domain"
	"diligencias/internal/repository"
	"diligencias/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var requesters = []string{"Ana Lima", "Carlos Pereira", "Juliana Martins", "Roberto Alves", "Fernanda Costa"}

var addresses = []domain.Appointment{
	{CEP: "88010-000", Street: "Rua Felipe Schmidt", Number: "515", District: "Centro", City: "Florianópolis", State: "SC"},
	{CEP: "88015-200", Street: "Avenida Beira Mar Norte", Number: "2000", Complement: "Sala 401", District: "Centro", City: "Florianópolis", State: "SC"},
	{CEP: "88101-001", Street: "Rua Koesa", Number: "36", District: "Kobrasol", City: "São José", State: "SC"},
	{CEP: "88070-800", Street: "Rua Sete de Setembro", Number: "120", District: "Estreito", City: "Florianópolis", State: "SC"},
}

func main() {
	hash := flag.String("hash", "", "print a bcrypt hash of the given password for AUTH_PASSWORD_HASH and exit")
	days := flag.Int("days", 10, "number of weekdays ahead to fill with visits")
	flag.Parse()

	if *hash != "" {
		out, err := bcrypt.GenerateFromPassword([]byte(*hash), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, zap.NewNop())
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	ctx := context.Background()
	clock := schedule.NewClock(cfg.Location)
	appointments := repository.NewAppointmentRepository(db)
	unavailabilities := repository.NewUnavailabilityRepository(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	slots := cfg.Catalog.Strings()

	created, skipped := 0, 0
	date := clock.Today()
	for filled := 0; filled < *days; {
		date, err = schedule.AddDays(date, 1)
		if err != nil {
			log.Fatal(err)
		}
		if schedule.IsWeekend(date) {
			continue
		}
		filled++

		// leave the third weekday free for the unavailability below
		if filled == 3 {
			u := &domain.Unavailability{ID: uuid.NewString(), Date: date, Reason: "Manutenção do veículo"}
			if err := unavailabilities.Create(ctx, u); err != nil && !errors.Is(err, repository.ErrDuplicate) {
				log.Printf("unavailability %s: %v", date, err)
			}
			continue
		}

		for i := 0; i < 1+rng.Intn(4); i++ {
			addr := addresses[rng.Intn(len(addresses))]
			a := addr
			a.ID = uuid.NewString()
			a.RequesterName = requesters[rng.Intn(len(requesters))]
			a.Date = date
			a.Slot = slots[rng.Intn(len(slots))]

			switch err := appointments.Create(ctx, &a); {
			case err == nil:
				created++
			case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrDayBlocked):
				skipped++
			default:
				log.Fatalf("create appointment: %v", err)
			}
		}
	}

	// one finished visit so receipts and summaries have data
	past := domain.Appointment{
		ID:            uuid.NewString(),
		RequesterName: requesters[0],
		Date:          clock.Today(),
		Slot:          slots[0],
	}
	fillAddress(&past, addresses[0])
	if err := appointments.Create(ctx, &past); err == nil {
		receipt := &domain.Receipt{ID: uuid.NewString(), Amount: 85.5}
		if _, err := appointments.Complete(ctx, past.ID, receipt, time.Now()); err != nil {
			log.Printf("complete %s: %v", past.ID, err)
		}
	}

	fmt.Fprintf(os.Stdout, "seed done: %d visits created, %d slot collisions skipped\n", created, skipped)
}

func fillAddress(a *domain.Appointment, from domain.Appointment) {
	a.CEP, a.Street, a.Number, a.Complement = from.CEP, from.Street, from.Number, from.Complement
	a.District, a.City, a.State = from.District, from.City, from.State
}
