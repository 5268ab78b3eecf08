package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kit-allocator/internal/models"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is used when NewNATSNotifier gets an empty subject.
const DefaultSubject = "onboarding.assets.assigned"

var ErrNoConnection = errors.New("nats connection is required")

// NATSNotifier publishes notices as JSON on a core NATS subject.
//
// The employee id is sent in the Employee-Id header so consumers can filter
// without decoding the body.
type NATSNotifier struct {
	nc      *nats.Conn
	subject string
}

var _ Notifier = (*NATSNotifier)(nil)

func NewNATSNotifier(nc *nats.Conn, subject string) (*NATSNotifier, error) {
	if nc == nil {
		return nil, ErrNoConnection
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSNotifier{nc: nc, subject: subject}, nil
}

func (n *NATSNotifier) Subject() string { return n.subject }

func (n *NATSNotifier) NotifyAssetsAssigned(ctx context.Context, notice models.AssignmentNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	msg := nats.NewMsg(n.subject)
	msg.Header.Set("Employee-Id", notice.EmployeeID)
	msg.Data = data

	if err := n.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish to %s: %w", n.subject, err)
	}
	return nil
}
