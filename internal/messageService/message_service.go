package message

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"
)

// CreateInput holds a contact form submission
type CreateInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// MessageService stores contact form messages for admins
type MessageService struct {
	repo repository.MessageDB
}

// NewMessageService creates a MessageService on top of repo
func NewMessageService(repo repository.MessageDB) *MessageService {
	return &MessageService{repo: repo}
}

// Create validates and stores a contact message
func (s *MessageService) Create(ctx context.Context, in CreateInput) (models.Message, error) {
	msg := models.Message{
		MessageID: utils.GenerateID(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   models.MessageSubject(strings.ToLower(strings.TrimSpace(in.Subject))),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now().UTC(),
	}

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return models.Message{}, fmt.Errorf("service: %w - name, email and message are required", auctionerrors.ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return models.Message{}, fmt.Errorf("service: %w - invalid email address", auctionerrors.ErrInvalidMessage)
	}
	if !msg.Subject.Valid() {
		return models.Message{}, fmt.Errorf("service: %w - unknown subject %q", auctionerrors.ErrInvalidMessage, msg.Subject)
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return models.Message{}, fmt.Errorf("service: failed to store message: %w", err)
	}
	return msg, nil
}

// List returns all messages, newest first
func (s *MessageService) List(ctx context.Context) ([]models.Message, error) {
	msgs, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list messages: %w", err)
	}
	return msgs, nil
}
