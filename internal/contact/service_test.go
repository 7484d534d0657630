package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/legacyframe/storefront/internal/notify"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
)

type stubContactClient struct {
	err   error
	calls int
	last  SendMessageRequest
}

func (s *stubContactClient) Send(ctx context.Context, req SendMessageRequest) error {
	s.calls++
	s.last = req
	return s.err
}

func newTestService(t *testing.T, client Client) Service {
	t.Helper()
	svc, err := NewService(client, notify.NewEmitter(nil, nil), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSendForwardsTrimmedFields(t *testing.T) {
	client := &stubContactClient{}
	svc := newTestService(t, client)

	err := svc.Send(context.Background(), "  Ana  ", " ana@example.com ", " Hola ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if client.last.Nombre != "Ana" || client.last.Email != "ana@example.com" || client.last.Mensaje != "Hola" {
		t.Fatalf("fields not trimmed: %+v", client.last)
	}
}

func TestSendRejectsBlankFields(t *testing.T) {
	client := &stubContactClient{}
	svc := newTestService(t, client)

	cases := [][3]string{
		{"", "ana@example.com", "Hola"},
		{"Ana", "   ", "Hola"},
		{"Ana", "ana@example.com", ""},
	}
	for _, c := range cases {
		err := svc.Send(context.Background(), c[0], c[1], c[2])
		var apiErr *pkgerrors.Error
		if !errors.As(err, &apiErr) || apiErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %v: expected validation error, got %v", c, err)
		}
	}
	if client.calls != 0 {
		t.Fatal("blank fields must not reach the remote")
	}
}

func TestSendWrapsTransportFailure(t *testing.T) {
	client := &stubContactClient{err: pkgerrors.New(pkgerrors.CodeDependency, "dial tcp: connection refused")}
	svc := newTestService(t, client)

	err := svc.Send(context.Background(), "Ana", "ana@example.com", "Hola")
	var apiErr *pkgerrors.Error
	if !errors.As(err, &apiErr) || apiErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if apiErr.Message() == "dial tcp: connection refused" {
		t.Fatal("raw network error must not leak to the caller")
	}
}

func TestSendPassesRemoteValidationThrough(t *testing.T) {
	client := &stubContactClient{err: pkgerrors.New(pkgerrors.CodeValidation, "email inválido")}
	svc := newTestService(t, client)

	err := svc.Send(context.Background(), "Ana", "ana@example", "Hola")
	var apiErr *pkgerrors.Error
	if !errors.As(err, &apiErr) || apiErr.Message() != "email inválido" {
		t.Fatalf("remote validation message must pass through, got %v", err)
	}
}
