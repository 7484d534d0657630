package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/legacyframe/storefront/internal/notify"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
)

// Service forwards support messages to the contact service.
type Service interface {
	Send(ctx context.Context, name, email, message string) error
}

type service struct {
	client  Client
	emitter *notify.Emitter
	logg    *logger.Logger
}

// NewService builds the support-message sender.
func NewService(client Client, emitter *notify.Emitter, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("contact client required")
	}
	return &service{client: client, emitter: emitter, logg: logg}, nil
}

// Send validates and forwards one support message. Transport failures come
// back as a friendly dependency error instead of the raw network error.
func (s *service) Send(ctx context.Context, name, email, message string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name, email and message are required")
	}

	err := s.client.Send(ctx, SendMessageRequest{Nombre: name, Email: email, Mensaje: message})
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "support message delivery failed", err)
		}
		var apiErr *pkgerrors.Error
		if errors.As(err, &apiErr) && apiErr.Code() == pkgerrors.CodeDependency {
			return pkgerrors.New(pkgerrors.CodeDependency, "no pudimos enviar tu mensaje, inténtalo más tarde")
		}
		return err
	}

	s.emitter.Emit(ctx, notify.KindSupportMessage, "Mensaje enviado",
		"Tu mensaje fue recibido, te contactaremos pronto", map[string]string{"email": email})
	return nil
}
