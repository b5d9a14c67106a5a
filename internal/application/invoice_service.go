package application

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	carDomain "github.com/autoconnect-transport/service-admin/internal/domain/car"
)

const (
	invoiceCompany = "AutoConnect Transport"
	invoiceContact = "otocnct@gmail.com"
)

// InvoiceLineItem is one charge line on an invoice.
type InvoiceLineItem struct {
	Date        string
	Description string
	Units       int64
	AmountCents int64
}

// Invoice is the itemized document emailed to the client after confirmation.
type Invoice struct {
	Company        string
	Contact        string
	BookingOfficer string
	InvoiceNo      string
	Date           string
	DateOfTrip     string
	Driver         string
	Unit           string
	Guest          string
	Items          []InvoiceLineItem
}

// InvoiceService builds and sends invoices for confirmed bookings.
type InvoiceService struct {
	bookings bookingDomain.BookingRepository
	cars     carDomain.CarRepository
	email    EmailChannel
	logger   *zap.Logger
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	bookings bookingDomain.BookingRepository,
	cars carDomain.CarRepository,
	email EmailChannel,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		bookings: bookings,
		cars:     cars,
		email:    email,
		logger:   logger,
	}
}

// SendInvoice builds the invoice for the given booking and emails it to the
// client.
func (s *InvoiceService) SendInvoice(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	invoice := s.buildInvoice(ctx, bk)
	subject := fmt.Sprintf("Invoice #%s", invoice.InvoiceNo)
	body := renderInvoice(invoice)

	if err := s.email.Send(bk.ClientEmail(), subject, body); err != nil {
		return fmt.Errorf("failed to send invoice email: %w", err)
	}

	s.logger.Info("invoice sent",
		zap.String("booking_number", bk.BookingNumber()),
		zap.String("to", bk.ClientEmail()),
	)
	return nil
}

func (s *InvoiceService) buildInvoice(ctx context.Context, bk *bookingDomain.Booking) Invoice {
	unit := bk.CarID().String()
	driver := ""
	if c, err := s.cars.FindByID(ctx, bk.CarID()); err == nil {
		unit = fmt.Sprintf("%s %s (%s)", c.Brand(), c.Model(), c.PlateNumber())
		driver = c.Driver()
	} else {
		s.logger.Warn("car lookup failed for invoice",
			zap.String("car_id", bk.CarID().String()),
			zap.Error(err),
		)
	}

	description := "For Company"
	if bk.RentalType() == "personal" {
		description = "For Personal"
	}

	created := bk.CreatedAt().Format("1/2/2006")
	return Invoice{
		Company:        invoiceCompany,
		Contact:        invoiceContact,
		BookingOfficer: bk.Officer(),
		InvoiceNo:      bk.BookingNumber(),
		Date:           created,
		DateOfTrip: fmt.Sprintf("%s - %s",
			bk.PickupDate().Format("1/2/2006"), bk.ReturnDate().Format("1/2/2006")),
		Driver: driver,
		Unit:   unit,
		Guest:  bk.ClientName(),
		Items: []InvoiceLineItem{
			{
				Date:        created,
				Description: description,
				Units:       rentalDays(bk.PickupDate(), bk.ReturnDate()),
				AmountCents: bk.PriceCents(),
			},
		},
	}
}

// rentalDays counts chargeable days, rounding partial days up. A same-day
// rental still counts as one day.
func rentalDays(pickup, ret time.Time) int64 {
	hours := ret.Sub(pickup).Hours()
	days := int64(math.Ceil(hours / 24))
	if days < 1 {
		return 1
	}
	return days
}

// renderInvoice produces the plain-text invoice body.
func renderInvoice(inv Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", inv.Company)
	fmt.Fprintf(&b, "Contact: %s\n\n", inv.Contact)
	fmt.Fprintf(&b, "Invoice No: %s\n", inv.InvoiceNo)
	fmt.Fprintf(&b, "Date: %s\n", inv.Date)
	fmt.Fprintf(&b, "Booking Officer: %s\n", inv.BookingOfficer)
	fmt.Fprintf(&b, "Date of Trip: %s\n", inv.DateOfTrip)
	fmt.Fprintf(&b, "Unit: %s\n", inv.Unit)
	if inv.Driver != "" {
		fmt.Fprintf(&b, "Driver: %s\n", inv.Driver)
	}
	fmt.Fprintf(&b, "Guest: %s\n\n", inv.Guest)

	b.WriteString("Date        Description     Units   Amount\n")
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "%-12s%-16s%-8d%.2f\n",
			item.Date, item.Description, item.Units, float64(item.AmountCents)/100)
	}

	var totalCents int64
	for _, item := range inv.Items {
		totalCents += item.AmountCents
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", float64(totalCents)/100)
	fmt.Fprintf(&b, "\nThank you for choosing %s!\n", inv.Company)
	return b.String()
}
