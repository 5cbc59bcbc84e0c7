package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentormatch/connect-api/internal/api/metrics"
	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

// ConnectionService materializes accepted requests into connection facts and
// serves the connections list.
type ConnectionService struct {
	connections ports.ConnectionRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewConnectionService(connections ports.ConnectionRepository, users ports.UserRepository, logger zerolog.Logger) *ConnectionService {
	return &ConnectionService{connections: connections, users: users, logger: logger}
}

// Materialize upserts the connection fact for an accepted request. The upsert
// is keyed by the unordered pair, so retries for the same request (or a replay
// after a crash) never create duplicates.
func (s *ConnectionService) Materialize(ctx context.Context, request *domain.ConnectionRequest) error {
	conn, err := domain.NewConnection(request)
	if err != nil {
		return fmt.Errorf("materialize: %w", err)
	}
	conn.ID = uuid.NewString()

	if err := s.connections.Upsert(ctx, conn); err != nil {
		return fmt.Errorf("materialize: %w", err)
	}

	metrics.ConnectionsMaterializedTotal.Inc()
	s.logger.Info().
		Str("request_id", request.ID).
		Str("pair", conn.PairKey).
		Msg("connection materialized")
	return nil
}

// ListConnections returns userID's connections newest first, each resolved to
// the counterpart's profile.
func (s *ConnectionService) ListConnections(ctx context.Context, userID string) ([]ports.ConnectionItem, error) {
	conns, err := s.connections.ListFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(conns) == 0 {
		return []ports.ConnectionItem{}, nil
	}

	otherIDs := make([]string, 0, len(conns))
	for _, c := range conns {
		otherIDs = append(otherIDs, c.Counterpart(userID))
	}
	others, err := s.users.FindByIDs(ctx, otherIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ports.ConnectionItem, 0, len(conns))
	for _, c := range conns {
		other, ok := others[c.Counterpart(userID)]
		if !ok {
			s.logger.Warn().Str("pair", c.PairKey).Msg("connection with missing counterpart profile")
			continue
		}
		items = append(items, ports.ConnectionItem{User: other, Since: c.Since})
	}
	return items, nil
}
