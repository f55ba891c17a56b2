package service

import (
	"context"
	"fmt"
	"time"

	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

type InvoiceService interface {
	Create(ctx context.Context, req *dto.InvoiceRequest) (*model.Invoice, error)
	Get(ctx context.Context, id uint) (*model.Invoice, error)
	List(ctx context.Context) ([]*model.Invoice, error)
	Update(ctx context.Context, id uint, req *dto.InvoiceRequest) (*model.Invoice, error)
	Delete(ctx context.Context, id uint) error
}

type invoiceServiceImpl struct {
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository) InvoiceService {
	return &invoiceServiceImpl{invoiceRepo: invoiceRepo}
}

func parseInvoiceDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func (s *invoiceServiceImpl) Create(ctx context.Context, req *dto.InvoiceRequest) (*model.Invoice, error) {
	if req.OrderID == 0 || req.DueDate == "" {
		return nil, ErrMissingFields
	}

	dueDate, err := parseInvoiceDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate", ErrMissingFields)
	}

	date := time.Now()
	if req.Date != "" {
		if d, err := parseInvoiceDate(req.Date); err == nil {
			date = d
		}
	}

	status := req.PaymentStatus
	if status == "" {
		status = model.PaymentStatusPending
	}

	invoice := &model.Invoice{
		OrderID:       req.OrderID,
		Date:          date,
		DueDate:       dueDate,
		Total:         req.Total,
		PaymentStatus: status,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceServiceImpl) Get(ctx context.Context, id uint) (*model.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

func (s *invoiceServiceImpl) List(ctx context.Context) ([]*model.Invoice, error) {
	return s.invoiceRepo.FindAll(ctx)
}

func (s *invoiceServiceImpl) Update(ctx context.Context, id uint, req *dto.InvoiceRequest) (*model.Invoice, error) {
	fields := map[string]interface{}{}
	if req.OrderID != 0 {
		fields["order_id"] = req.OrderID
	}
	if req.Total != 0 {
		fields["total"] = req.Total
	}
	if req.PaymentStatus != "" {
		fields["payment_status"] = req.PaymentStatus
	}
	if req.DueDate != "" {
		if d, err := parseInvoiceDate(req.DueDate); err == nil {
			fields["due_date"] = d
		}
	}
	if req.Date != "" {
		if d, err := parseInvoiceDate(req.Date); err == nil {
			fields["date"] = d
		}
	}
	if len(fields) == 0 {
		return s.invoiceRepo.FindByID(ctx, id)
	}
	return s.invoiceRepo.Updates(ctx, id, fields)
}

func (s *invoiceServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.invoiceRepo.Delete(ctx, id)
}
