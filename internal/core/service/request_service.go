package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentormatch/connect-api/internal/api/metrics"
	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

// EventRecorder abstracts the async audit-trail sink. Recording must never
// block or fail a ledger mutation.
type EventRecorder interface {
	Record(event domain.SignalEvent)
}

// RequestService owns the connection-request ledger: signal creation, the
// single reviewer-gated transition, and the pending inbox.
type RequestService struct {
	requests    ports.RequestRepository
	users       ports.UserRepository
	connections ports.ConnectionService
	cache       ports.FeedCache
	recorder    EventRecorder
	logger      zerolog.Logger
}

func NewRequestService(
	requests ports.RequestRepository,
	users ports.UserRepository,
	connections ports.ConnectionService,
	cache ports.FeedCache,
	recorder EventRecorder,
	logger zerolog.Logger,
) *RequestService {
	return &RequestService{
		requests:    requests,
		users:       users,
		connections: connections,
		cache:       cache,
		recorder:    recorder,
		logger:      logger,
	}
}

// SendSignal records an interested or ignored signal from fromUserID toward
// toUserID. Interested inserts a pending request guarded by the pair-uniqueness
// index; ignored produces a terminal rejected row that needs no review.
func (s *RequestService) SendSignal(ctx context.Context, fromUserID, toUserID string, signal domain.Signal) (*domain.ConnectionRequest, error) {
	if fromUserID == toUserID {
		return nil, domain.ErrSelfSignal
	}
	if _, err := s.users.FindByID(ctx, toUserID); err != nil {
		return nil, err
	}

	var req *domain.ConnectionRequest
	var err error
	switch signal {
	case domain.SignalInterested:
		req, err = s.createPending(ctx, fromUserID, toUserID)
	case domain.SignalIgnored:
		req, err = s.createIgnored(ctx, fromUserID, toUserID)
	default:
		return nil, domain.ErrInvalidSignal
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRequest) {
			metrics.SignalConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.SignalsSentTotal.WithLabelValues(string(signal)).Inc()
	s.recorder.Record(domain.SignalEvent{
		RequestID:  req.ID,
		PairKey:    req.PairKey,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Kind:       eventKindForSignal(signal),
		OccurredAt: req.CreatedAt,
	})
	s.invalidateFeeds(ctx, fromUserID, toUserID)

	s.logger.Info().
		Str("request_id", req.ID).
		Str("from", fromUserID).
		Str("to", toUserID).
		Str("signal", string(signal)).
		Msg("signal recorded")

	return req, nil
}

func (s *RequestService) createPending(ctx context.Context, fromUserID, toUserID string) (*domain.ConnectionRequest, error) {
	req := &domain.ConnectionRequest{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		PairKey:    domain.PairKey(fromUserID, toUserID),
		Signal:     domain.SignalInterested,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// createIgnored finalizes the sender's own pending request when one exists,
// otherwise inserts a fresh rejected row. Either way the outcome is terminal
// and the target never sees it in the review inbox.
func (s *RequestService) createIgnored(ctx context.Context, fromUserID, toUserID string) (*domain.ConnectionRequest, error) {
	now := time.Now().UTC()

	req, err := s.requests.RejectOwnPending(ctx, fromUserID, toUserID, now)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, domain.ErrRequestNotFound) {
		return nil, err
	}

	req = &domain.ConnectionRequest{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		PairKey:    domain.PairKey(fromUserID, toUserID),
		Signal:     domain.SignalIgnored,
		Status:     domain.StatusRejected,
		CreatedAt:  now,
		ResolvedAt: &now,
	}
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ReviewRequest applies the addressee's decision to a pending request. The
// transition is a compare-and-swap: two concurrent reviews of the same request
// yield exactly one winner and one ErrRequestResolved. On acceptance the
// connection fact is materialized before returning, so a follow-up
// connections read is always consistent.
func (s *RequestService) ReviewRequest(ctx context.Context, requestID, reviewerID string, decision domain.RequestStatus) (*domain.ConnectionRequest, error) {
	if !domain.StatusPending.CanTransitionTo(decision) {
		return nil, domain.ErrInvalidDecision
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToUserID != reviewerID {
		return nil, domain.ErrNotAddressee
	}
	if req.Status != domain.StatusPending {
		// An accepted request must always have its connection fact. If a
		// previous review committed the transition but failed the upsert, a
		// retry lands here; the idempotent materialization repairs the fact.
		if req.Status == domain.StatusAccepted {
			if err := s.connections.Materialize(ctx, req); err != nil {
				s.logger.Error().Err(err).Str("request_id", requestID).Msg("failed to repair missing connection")
			}
		}
		return nil, domain.ErrRequestResolved
	}

	resolved, err := s.requests.Resolve(ctx, requestID, decision, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if decision == domain.StatusAccepted {
		if err := s.connections.Materialize(ctx, resolved); err != nil {
			s.logger.Error().Err(err).Str("request_id", requestID).Msg("failed to materialize connection")
			return nil, fmt.Errorf("review request: materialize connection: %w", err)
		}
	}

	metrics.RequestsReviewedTotal.WithLabelValues(string(decision)).Inc()
	s.recorder.Record(domain.SignalEvent{
		RequestID:  resolved.ID,
		PairKey:    resolved.PairKey,
		FromUserID: resolved.FromUserID,
		ToUserID:   resolved.ToUserID,
		Kind:       string(decision),
		OccurredAt: *resolved.ResolvedAt,
	})
	s.invalidateFeeds(ctx, resolved.FromUserID, resolved.ToUserID)

	s.logger.Info().
		Str("request_id", requestID).
		Str("reviewer", reviewerID).
		Str("decision", string(decision)).
		Msg("request reviewed")

	return resolved, nil
}

// ListPendingRequests returns the reviewer's inbox with sender profiles joined.
func (s *RequestService) ListPendingRequests(ctx context.Context, userID string) ([]ports.PendingRequestItem, error) {
	pending, err := s.requests.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return []ports.PendingRequestItem{}, nil
	}

	senderIDs := make([]string, 0, len(pending))
	for _, r := range pending {
		senderIDs = append(senderIDs, r.FromUserID)
	}
	senders, err := s.users.FindByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ports.PendingRequestItem, 0, len(pending))
	for _, r := range pending {
		sender, ok := senders[r.FromUserID]
		if !ok {
			// Sender profile gone; nothing reviewable without it.
			s.logger.Warn().Str("request_id", r.ID).Str("from", r.FromUserID).Msg("pending request with missing sender")
			continue
		}
		items = append(items, ports.PendingRequestItem{Request: r, FromUser: sender})
	}
	return items, nil
}

// invalidateFeeds drops both users' cached feeds after a ledger change.
// Failures are non-fatal: the cache TTL bounds staleness.
func (s *RequestService) invalidateFeeds(ctx context.Context, userIDs ...string) {
	if err := s.cache.Invalidate(ctx, userIDs...); err != nil {
		s.logger.Warn().Err(err).Msg("feed cache invalidation failed")
	}
}

func eventKindForSignal(signal domain.Signal) string {
	if signal == domain.SignalIgnored {
		return "ignored"
	}
	return "created"
}
