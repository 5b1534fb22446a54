package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AchintyaNigam/my-rail/internal/models"
	"github.com/AchintyaNigam/my-rail/internal/repository"
	"github.com/AchintyaNigam/my-rail/internal/ticketpdf"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketService interface {
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	RenderPDF(ctx context.Context, id string) ([]byte, string, error)
}

type ticketService struct {
	repo repository.TicketRepository
}

func NewTicketService(repo repository.TicketRepository) TicketService {
	return &ticketService{repo: repo}
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	return t, err
}

func (s *ticketService) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	t, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return ticketpdf.Render(t)
}
