package auth

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewSecurityLogsRepository(db *bun.DB) repository.Repository[*SecurityLog] {
	handlers := repository.ModelHandlers[*SecurityLog]{
		NewRecord: func() *SecurityLog {
			return &SecurityLog{}
		},
		GetID: func(record *SecurityLog) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *SecurityLog, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "username"
		},
	}
	return repository.NewRepository(db, handlers)
}

// securityLogSink persists audit events as append-only security_log rows.
type securityLogSink struct {
	logs repository.Repository[*SecurityLog]
}

// NewSecurityLogSink adapts the security-log repository into an AuditSink.
func NewSecurityLogSink(logs repository.Repository[*SecurityLog]) AuditSink {
	return &securityLogSink{logs: logs}
}

func (s *securityLogSink) Record(ctx context.Context, event SecurityEvent) error {
	record := &SecurityLog{
		ID:        uuid.New(),
		Username:  event.Username,
		EventType: event.EventType,
		IP:        event.IP,
		UserAgent: event.UserAgent,
		CreatedAt: event.OccurredAt,
		Metadata:  event.Metadata,
	}

	_, err := s.logs.Create(ctx, record)
	return err
}
