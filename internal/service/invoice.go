package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelex/internal/domain"
	"travelex/internal/redis"
	"travelex/internal/repository"
)

const invoiceLockTTL = 10 * time.Second

// InvoiceService issues and renders invoices.
type InvoiceService struct {
	uow                 repository.UnitOfWork
	invoiceRepo         repository.InvoiceRepository
	orderService        *OrderService
	tripRepo            repository.TripRepository
	lockStore           redis.LockStoreInterface
	access              *AccessService
	notificationService *NotificationService
	now                 func() time.Time
}

// NewInvoiceService creates a new InvoiceService. lockStore may be nil.
func NewInvoiceService(
	uow repository.UnitOfWork,
	invoiceRepo repository.InvoiceRepository,
	orderService *OrderService,
	tripRepo repository.TripRepository,
	lockStore redis.LockStoreInterface,
	access *AccessService,
	notificationService *NotificationService,
) *InvoiceService {
	return &InvoiceService{
		uow:                 uow,
		invoiceRepo:         invoiceRepo,
		orderService:        orderService,
		tripRepo:            tripRepo,
		lockStore:           lockStore,
		access:              access,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// IssueInvoice creates the invoice for a pending order and marks the order
// invoiced in the same transaction.
func (s *InvoiceService) IssueInvoice(ctx context.Context, callerID, orderID string) (*domain.Invoice, error) {
	order, err := s.orderService.GetOrder(ctx, callerID, orderID)
	if err != nil {
		return nil, err
	}

	if s.lockStore != nil {
		acquired, err := s.lockStore.AcquireOrderLock(ctx, order.ID, invoiceLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrInvoiceInProgress
		}
		defer func() {
			_ = s.lockStore.ReleaseOrderLock(context.Background(), order.ID)
		}()
	}

	existing, err := s.invoiceRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInvoiced
	}
	if order.Status != domain.OrderStatusPending {
		return nil, ErrOrderNotPending
	}

	trip, err := s.tripRepo.GetByID(ctx, order.TripID)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now().UTC()
	invoice := &domain.Invoice{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		TripID:    order.TripID,
		OwnerID:   order.OwnerID,
		Number:    invoiceNumber(issuedAt),
		Amount:    order.Amount,
		Breakdown: trip.Breakdown,
		IssuedAt:  issuedAt,
	}

	err = s.uow.Do(ctx, func(repos repository.TxRepositories) error {
		if err := repos.Invoices.Create(ctx, invoice); err != nil {
			return err
		}
		return repos.Orders.UpdateStatus(ctx, order.ID, domain.OrderStatusInvoiced)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyInvoiced
		}
		return nil, err
	}

	if s.notificationService != nil {
		if err := s.notificationService.NotifyInvoiceIssued(ctx, invoice); err != nil {
			log.Printf("notify invoice issued %s: %v", invoice.ID, err)
		}
	}

	return invoice, nil
}

// GetInvoice returns an invoice the caller owns, or any invoice for an admin.
func (s *InvoiceService) GetInvoice(ctx context.Context, callerID, invoiceID string) (*domain.Invoice, error) {
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := s.access.CanAccess(ctx, callerID, invoice.OwnerID); err != nil {
		return nil, err
	}
	return invoice, nil
}

// invoiceNumber returns INV-YYYYMMDD-XXXXXXXX.
func invoiceNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", t.Format("20060102"), suffix)
}

// FormatInvoice formats the invoice as plain text (for email/print).
func (s *InvoiceService) FormatInvoice(invoice *domain.Invoice) string {
	var b strings.Builder

	b.WriteString(`
=====================================
          TRAVEL INVOICE
=====================================
Invoice: ` + invoice.Number + `
Order ID: ` + invoice.OrderID + `
Trip ID: ` + invoice.TripID + `
Date: ` + invoice.IssuedAt.Format("Jan 02, 2006 3:04 PM") + `

PRICE BREAKDOWN
-------------------------------------
Base:             ` + formatAmount(invoice.Breakdown.Base) + `
`)

	for _, item := range invoice.Breakdown.Surcharges {
		fmt.Fprintf(&b, "+ %-15s %s\n", item.Name, formatAmount(item.Amount))
	}
	for _, item := range invoice.Breakdown.Discounts {
		fmt.Fprintf(&b, "- %-15s %s\n", item.Name, formatAmount(item.Amount))
	}

	b.WriteString(`-------------------------------------
TOTAL:            ` + formatAmount(invoice.Amount) + `

=====================================
    Thank you for travelling with us!
=====================================
`)
	return b.String()
}

func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
