//go:build integration

package main_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/autoconnect-transport/service-admin/internal/application"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	"github.com/autoconnect-transport/service-admin/internal/kafka"
	"github.com/autoconnect-transport/service-admin/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// adminStack holds wired-up admin service components backed by a real database.
type adminStack struct {
	Service   *application.BookingService
	Bookings  *repository.GormBookingRepository
	Emails    *recordingEmailChannel
	Published *recordingPublisher
}

// setupContainers starts a PostgreSQL testcontainer and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_admin",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_admin sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.BookingModel{},
		&repository.CarModel{},
		&repository.AdminModel{},
		&repository.AuditLogModel{},
		&repository.NotificationModel{},
	))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupAdminStack wires the booking service against the real database, with
// recording fakes for the outbound email and event channels.
func setupAdminStack(t *testing.T, db *gorm.DB) *adminStack {
	t.Helper()

	bookingRepo := repository.NewGormBookingRepository(db)
	auditRepo := repository.NewGormAuditRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	emails := &recordingEmailChannel{}
	published := &recordingPublisher{}

	lifecycle := bookingDomain.NewLifecycle(bookingDomain.NewTieredCancellationPolicy())
	dispatcher := application.NewSideEffectDispatcher(
		bookingRepo, auditRepo, notificationRepo, emails, zap.NewNop(),
	)
	service := application.NewBookingService(
		bookingRepo, lifecycle, dispatcher, published, zap.NewNop(),
	)

	return &adminStack{
		Service:   service,
		Bookings:  bookingRepo,
		Emails:    emails,
		Published: published,
	}
}

// seedBooking persists a fresh booking and returns it.
func seedBooking(t *testing.T, repo *repository.GormBookingRepository, pickupIn time.Duration) *bookingDomain.Booking {
	t.Helper()

	pickup := time.Now().UTC().Add(pickupIn).Truncate(time.Second)
	bk, err := bookingDomain.NewBooking(
		uuid.New(), uuid.New(),
		"Jordan Reyes", "jordan@example.com", "+15550100",
		"Downtown Garage", pickup, "09:00",
		"Airport Lot B", pickup.Add(72*time.Hour), "17:30",
		"personal",
		120000,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), bk))
	return bk
}

// recordingEmailChannel captures sent email instead of delivering it.
type recordingEmailChannel struct {
	mu   sync.Mutex
	Sent []sentEmail
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

func (c *recordingEmailChannel) Send(to, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sent = append(c.Sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

// recordingPublisher captures published events instead of writing to Kafka.
type recordingPublisher struct {
	mu     sync.Mutex
	Events []*kafka.Event
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, event *kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}
