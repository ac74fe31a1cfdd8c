package services

import (
	"context"
	"strings"

	"donerci/internal/apperr"
	"donerci/internal/models"
	"donerci/internal/repository"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactService interface {
	Submit(ctx context.Context, in *ContactInput) (*models.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(ctx context.Context, in *ContactInput) (*models.ContactMessage, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(in.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, apperr.Validationf("email", "email address is invalid")
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: in.Message,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, apperr.Persistence("save contact message", err)
	}
	return msg, nil
}
