// Package excel builds admin export workbooks.
package excel

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"tourhub/models"
	"tourhub/ports"
)

// Exporter streams repository data into xlsx workbooks.
type Exporter struct {
	bookings    ports.BookingRepository
	subscribers ports.SubscriberRepository
}

// NewExporter creates an exporter.
func NewExporter(bookings ports.BookingRepository, subscribers ports.SubscriberRepository) *Exporter {
	return &Exporter{bookings: bookings, subscribers: subscribers}
}

// Bookings writes a workbook of the filtered bookings to w.
func (e *Exporter) Bookings(ctx context.Context, filter ports.BookingFilter, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	header := []interface{}{"ID", "Tour", "Customer", "Email", "Phone", "Start", "Guests", "Total", "Currency", "Status", "Created"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	err := e.bookings.Each(ctx, filter, func(b *models.Booking) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			b.ID.String(),
			b.PostID.String(),
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.StartDate.Format(time.RFC3339),
			b.Guests,
			fmt.Sprintf("%.2f", float64(b.TotalCents)/100),
			b.Currency,
			string(b.Status),
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	})
	if err != nil {
		return err
	}

	return f.Write(w)
}

// Subscribers writes a workbook of active subscribers to w.
func (e *Exporter) Subscribers(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Subscribers"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	header := []interface{}{"Email", "Subscribed"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	err := e.subscribers.Each(ctx, func(s *models.Subscriber) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{s.Email, s.SubscribedAt.Format(time.RFC3339)}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	})
	if err != nil {
		return err
	}

	return f.Write(w)
}
