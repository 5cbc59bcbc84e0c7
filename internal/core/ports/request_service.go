package ports

import (
	"context"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// PendingRequestItem is a pending request joined with its sender's profile,
// as shown on the review screen.
type PendingRequestItem struct {
	Request  *domain.ConnectionRequest
	FromUser *domain.User
}

// RequestService is the request ledger's use-case surface: signal creation,
// review, and the pending inbox.
type RequestService interface {
	// SendSignal records an interested or ignored signal from one user toward
	// another. Interested creates a pending request (ErrDuplicateRequest when
	// the pair already has a live one); ignored creates or finalizes a
	// terminal rejected row that needs no review.
	SendSignal(ctx context.Context, fromUserID, toUserID string, signal domain.Signal) (*domain.ConnectionRequest, error)

	// ReviewRequest applies the addressee's decision to a pending request and,
	// on acceptance, materializes the connection before returning.
	ReviewRequest(ctx context.Context, requestID, reviewerID string, decision domain.RequestStatus) (*domain.ConnectionRequest, error)

	ListPendingRequests(ctx context.Context, userID string) ([]PendingRequestItem, error)
}
