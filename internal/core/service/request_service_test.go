package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	order []string // ids in insertion order
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.add(u)
	}
	return r
}

func (r *stubUserRepo) add(u *domain.User) {
	clone := *u
	r.order = append(r.order, u.ID)
	r.users[u.ID] = &clone
}

func (r *stubUserRepo) remove(id string) {
	delete(r.users, id)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.EmailID == user.EmailID {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = "user-" + clone.EmailID
	}
	r.add(&clone)
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, emailID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.EmailID == emailID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	found := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			found[id] = &clone
		}
	}
	return found, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return &clone, nil
}

func (r *stubUserRepo) ListCandidates(_ context.Context, excludeIDs []string, limit int) ([]*domain.User, error) {
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*domain.User
	for _, id := range r.order {
		if _, skip := excluded[id]; skip {
			continue
		}
		u, ok := r.users[id]
		if !ok {
			continue
		}
		clone := *u
		out = append(out, &clone)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// stubRequestRepo mirrors the Mongo repository's atomic guarantees: the
// pair-uniqueness check on insert and the status=pending compare-and-swap on
// resolve, both under one lock.
type stubRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*domain.ConnectionRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.ConnectionRequest)}
}

func (r *stubRequestRepo) Insert(_ context.Context, req *domain.ConnectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The unique partial index only covers live (pending or accepted) rows.
	if req.Status == domain.StatusPending || req.Status == domain.StatusAccepted {
		for _, existing := range r.requests {
			if existing.PairKey != req.PairKey {
				continue
			}
			if existing.Status == domain.StatusPending || existing.Status == domain.StatusAccepted {
				return domain.ErrDuplicateRequest
			}
		}
	}
	clone := *req
	r.requests[req.ID] = &clone
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) Resolve(_ context.Context, id string, decision domain.RequestStatus, at time.Time) (*domain.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	if req.Status != domain.StatusPending {
		return nil, domain.ErrRequestResolved
	}
	req.Status = decision
	req.ResolvedAt = &at
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) RejectOwnPending(_ context.Context, fromUserID, toUserID string, at time.Time) (*domain.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.FromUserID != fromUserID || req.ToUserID != toUserID || req.Status != domain.StatusPending {
			continue
		}
		req.Status = domain.StatusRejected
		req.Signal = domain.SignalIgnored
		req.ResolvedAt = &at
		clone := *req
		return &clone, nil
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubRequestRepo) ListPendingFor(_ context.Context, userID string) ([]*domain.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ConnectionRequest
	for _, req := range r.requests {
		if req.ToUserID == userID && req.Status == domain.StatusPending {
			clone := *req
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubRequestRepo) ListInvolving(_ context.Context, userID string) ([]*domain.ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ConnectionRequest
	for _, req := range r.requests {
		if req.FromUserID == userID || req.ToUserID == userID {
			clone := *req
			out = append(out, &clone)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Cache and recorder stubs
// ---------------------------------------------------------------------------

type stubFeedCache struct {
	entries     map[string][]string
	invalidated []string
	getErr      error
	setErr      error
}

func newStubFeedCache() *stubFeedCache {
	return &stubFeedCache{entries: make(map[string][]string)}
}

func (c *stubFeedCache) Get(_ context.Context, viewerID string) ([]string, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	ids, ok := c.entries[viewerID]
	return ids, ok, nil
}

func (c *stubFeedCache) Set(_ context.Context, viewerID string, candidateIDs []string) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[viewerID] = append([]string(nil), candidateIDs...)
	return nil
}

func (c *stubFeedCache) Invalidate(_ context.Context, viewerIDs ...string) error {
	for _, id := range viewerIDs {
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

type stubRecorder struct {
	events []domain.SignalEvent
}

func (r *stubRecorder) Record(event domain.SignalEvent) {
	r.events = append(r.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func testUser(id, firstName string) *domain.User {
	return &domain.User{
		ID:        id,
		FirstName: firstName,
		EmailID:   firstName + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

type requestHarness struct {
	svc      *RequestService
	users    *stubUserRepo
	requests *stubRequestRepo
	conns    *stubConnectionRepo
	cache    *stubFeedCache
	recorder *stubRecorder
	connSvc  *ConnectionService
}

func newRequestHarness(users ...*domain.User) *requestHarness {
	h := &requestHarness{
		users:    newStubUserRepo(users...),
		requests: newStubRequestRepo(),
		conns:    newStubConnectionRepo(),
		cache:    newStubFeedCache(),
		recorder: &stubRecorder{},
	}
	h.connSvc = NewConnectionService(h.conns, h.users, discardLogger)
	h.svc = NewRequestService(h.requests, h.users, h.connSvc, h.cache, h.recorder, discardLogger)
	return h
}

// ---------------------------------------------------------------------------
// SendSignal
// ---------------------------------------------------------------------------

func TestSendSignal_InterestedCreatesPending(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	req, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)
	if err != nil {
		t.Fatalf("SendSignal returned error: %v", err)
	}
	if req.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}
	if req.PairKey != domain.PairKey("alice", "bob") {
		t.Fatalf("unexpected pair key: %s", req.PairKey)
	}
	if len(h.recorder.events) != 1 || h.recorder.events[0].Kind != "created" {
		t.Fatalf("expected one created event, got %+v", h.recorder.events)
	}
	if len(h.cache.invalidated) != 2 {
		t.Fatalf("both users' feeds should be invalidated, got %v", h.cache.invalidated)
	}
}

func TestSendSignal_SelfSignal(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"))

	if _, err := h.svc.SendSignal(context.Background(), "alice", "alice", domain.SignalInterested); !errors.Is(err, domain.ErrSelfSignal) {
		t.Fatalf("expected ErrSelfSignal, got %v", err)
	}
}

func TestSendSignal_UnknownTarget(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"))

	if _, err := h.svc.SendSignal(context.Background(), "alice", "ghost", domain.SignalInterested); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendSignal_DuplicateSameDirection(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	if _, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested); err != nil {
		t.Fatalf("first signal failed: %v", err)
	}
	if _, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested); !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestSendSignal_DuplicateReverseDirection(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	if _, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested); err != nil {
		t.Fatalf("first signal failed: %v", err)
	}
	// The pair is unordered: bob cannot open a second live request to alice.
	if _, err := h.svc.SendSignal(context.Background(), "bob", "alice", domain.SignalInterested); !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestSendSignal_ConcurrentInterestedOneWinner(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	const attempts = 16
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var created, conflicts int
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicateRequest):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 || conflicts != attempts-1 {
		t.Fatalf("expected exactly one pending request, got %d created / %d conflicts", created, conflicts)
	}

	inbox, err := h.svc.ListPendingRequests(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListPendingRequests returned error: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("bob's inbox should hold exactly one request, got %d", len(inbox))
	}
}

func TestSendSignal_IgnoredCreatesTerminalRow(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	req, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalIgnored)
	if err != nil {
		t.Fatalf("SendSignal returned error: %v", err)
	}
	if req.Status != domain.StatusRejected || req.Signal != domain.SignalIgnored {
		t.Fatalf("ignore must produce a terminal rejected row, got %s/%s", req.Status, req.Signal)
	}
	if req.ResolvedAt == nil {
		t.Fatalf("ignored row must carry a resolution time")
	}

	// The target's inbox must stay empty: an ignore needs no review.
	inbox, err := h.svc.ListPendingRequests(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListPendingRequests returned error: %v", err)
	}
	if len(inbox) != 0 {
		t.Fatalf("ignore must not appear in the target's inbox, got %d items", len(inbox))
	}
}

func TestSendSignal_IgnoredFinalizesOwnPending(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	sent, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)
	if err != nil {
		t.Fatalf("interested signal failed: %v", err)
	}

	ignored, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalIgnored)
	if err != nil {
		t.Fatalf("ignore after interested failed: %v", err)
	}
	if ignored.ID != sent.ID {
		t.Fatalf("ignore should finalize the existing pending request, not create a new one")
	}
	if ignored.Status != domain.StatusRejected || ignored.Signal != domain.SignalIgnored {
		t.Fatalf("expected ignored-rejected, got %s/%s", ignored.Status, ignored.Signal)
	}

	inbox, _ := h.svc.ListPendingRequests(context.Background(), "bob")
	if len(inbox) != 0 {
		t.Fatalf("finalized request must leave bob's inbox, got %d items", len(inbox))
	}
}

func TestSendSignal_NewRequestAllowedAfterRejection(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	sent, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)
	if err != nil {
		t.Fatalf("first signal failed: %v", err)
	}
	if _, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", domain.StatusRejected); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	// A rejected row is terminal and frees the pair for a fresh request.
	if _, err := h.svc.SendSignal(context.Background(), "bob", "alice", domain.SignalInterested); err != nil {
		t.Fatalf("signal after rejection should succeed, got %v", err)
	}
}

func TestSendSignal_InvalidSignal(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	if _, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.Signal("superlike")); !errors.Is(err, domain.ErrInvalidSignal) {
		t.Fatalf("expected ErrInvalidSignal, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ReviewRequest
// ---------------------------------------------------------------------------

func TestReviewRequest_AcceptMaterializesConnection(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	sent, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)
	if err != nil {
		t.Fatalf("signal failed: %v", err)
	}

	resolved, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", domain.StatusAccepted)
	if err != nil {
		t.Fatalf("ReviewRequest returned error: %v", err)
	}
	if resolved.Status != domain.StatusAccepted || resolved.ResolvedAt == nil {
		t.Fatalf("expected accepted with resolution time, got %+v", resolved)
	}

	for _, userID := range []string{"alice", "bob"} {
		conns, err := h.connSvc.ListConnections(context.Background(), userID)
		if err != nil {
			t.Fatalf("ListConnections(%s) returned error: %v", userID, err)
		}
		if len(conns) != 1 {
			t.Fatalf("%s should have exactly one connection, got %d", userID, len(conns))
		}
	}

	alice, _ := h.connSvc.ListConnections(context.Background(), "alice")
	if alice[0].User.ID != "bob" {
		t.Fatalf("alice's connection should resolve to bob, got %s", alice[0].User.ID)
	}
}

func TestReviewRequest_OnlyAddresseeMayReview(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"), testUser("carol", "Carol"))

	sent, _ := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)

	for _, reviewer := range []string{"alice", "carol"} {
		if _, err := h.svc.ReviewRequest(context.Background(), sent.ID, reviewer, domain.StatusAccepted); !errors.Is(err, domain.ErrNotAddressee) {
			t.Fatalf("reviewer %s: expected ErrNotAddressee, got %v", reviewer, err)
		}
	}
}

func TestReviewRequest_DoubleReview(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	sent, _ := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)

	if _, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", domain.StatusAccepted); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", domain.StatusRejected); !errors.Is(err, domain.ErrRequestResolved) {
		t.Fatalf("expected ErrRequestResolved, got %v", err)
	}

	// The connection fact from the first review is untouched.
	conns, _ := h.connSvc.ListConnections(context.Background(), "alice")
	if len(conns) != 1 {
		t.Fatalf("expected one connection after failed second review, got %d", len(conns))
	}
}

func TestReviewRequest_ConcurrentReviewsOneWinner(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	sent, _ := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, decision := range []domain.RequestStatus{domain.StatusAccepted, domain.StatusRejected} {
		wg.Add(1)
		go func(d domain.RequestStatus) {
			defer wg.Done()
			_, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", d)
			results <- err
		}(decision)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrRequestResolved):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("expected exactly one winner, got %d wins / %d losses", wins, losses)
	}
}

func TestReviewRequest_RetryRepairsMissedConnection(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	sent, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)
	if err != nil {
		t.Fatalf("signal failed: %v", err)
	}

	// The connection write fails after the pending->accepted transition has
	// already committed.
	h.conns.upsertErr = errors.New("connections collection unavailable")
	if _, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", domain.StatusAccepted); err == nil {
		t.Fatalf("expected error when the connection write fails")
	}

	stored, err := h.requests.FindByID(context.Background(), sent.ID)
	if err != nil {
		t.Fatalf("find request failed: %v", err)
	}
	if stored.Status != domain.StatusAccepted {
		t.Fatalf("transition should have committed, got %s", stored.Status)
	}
	if conns, _ := h.connSvc.ListConnections(context.Background(), "alice"); len(conns) != 0 {
		t.Fatalf("connection should be missing before the retry")
	}

	// A retried review must repair the missing fact before reporting the
	// request as resolved.
	h.conns.upsertErr = nil
	if _, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", domain.StatusAccepted); !errors.Is(err, domain.ErrRequestResolved) {
		t.Fatalf("expected ErrRequestResolved on retry, got %v", err)
	}

	for _, userID := range []string{"alice", "bob"} {
		conns, err := h.connSvc.ListConnections(context.Background(), userID)
		if err != nil {
			t.Fatalf("ListConnections(%s) returned error: %v", userID, err)
		}
		if len(conns) != 1 {
			t.Fatalf("%s should have exactly one connection after the repair, got %d", userID, len(conns))
		}
	}
}

func TestReviewRequest_UnknownRequest(t *testing.T) {
	h := newRequestHarness(testUser("bob", "Bob"))

	if _, err := h.svc.ReviewRequest(context.Background(), "missing", "bob", domain.StatusAccepted); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestReviewRequest_InvalidDecision(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	sent, _ := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested)

	if _, err := h.svc.ReviewRequest(context.Background(), sent.ID, "bob", domain.StatusPending); !errors.Is(err, domain.ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestReviewRequest_IgnoredRowIsNotReviewable(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	ignored, _ := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalIgnored)

	if _, err := h.svc.ReviewRequest(context.Background(), ignored.ID, "bob", domain.StatusAccepted); !errors.Is(err, domain.ErrRequestResolved) {
		t.Fatalf("expected ErrRequestResolved, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListPendingRequests
// ---------------------------------------------------------------------------

func TestListPendingRequests_JoinsSendersNewestFirst(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"), testUser("carol", "Carol"))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	older := &domain.ConnectionRequest{
		ID: "req-old", FromUserID: "alice", ToUserID: "carol",
		PairKey: domain.PairKey("alice", "carol"), Signal: domain.SignalInterested,
		Status: domain.StatusPending, CreatedAt: base,
	}
	newer := &domain.ConnectionRequest{
		ID: "req-new", FromUserID: "bob", ToUserID: "carol",
		PairKey: domain.PairKey("bob", "carol"), Signal: domain.SignalInterested,
		Status: domain.StatusPending, CreatedAt: base.Add(time.Hour),
	}
	for _, r := range []*domain.ConnectionRequest{older, newer} {
		if err := h.requests.Insert(context.Background(), r); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}

	items, err := h.svc.ListPendingRequests(context.Background(), "carol")
	if err != nil {
		t.Fatalf("ListPendingRequests returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Request.ID != "req-new" || items[1].Request.ID != "req-old" {
		t.Fatalf("inbox not newest first: %s, %s", items[0].Request.ID, items[1].Request.ID)
	}
	if items[0].FromUser.ID != "bob" || items[1].FromUser.ID != "alice" {
		t.Fatalf("sender profiles not joined correctly")
	}
}

func TestListPendingRequests_SkipsMissingSender(t *testing.T) {
	h := newRequestHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	if _, err := h.svc.SendSignal(context.Background(), "alice", "bob", domain.SignalInterested); err != nil {
		t.Fatalf("signal failed: %v", err)
	}
	h.users.remove("alice")

	items, err := h.svc.ListPendingRequests(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListPendingRequests returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("request without a sender profile must be skipped, got %d items", len(items))
	}
}

func TestListPendingRequests_Empty(t *testing.T) {
	h := newRequestHarness(testUser("bob", "Bob"))

	items, err := h.svc.ListPendingRequests(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListPendingRequests returned error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", items)
	}
}

// interface guards
var (
	_ ports.RequestRepository = (*stubRequestRepo)(nil)
	_ ports.UserRepository    = (*stubUserRepo)(nil)
	_ ports.FeedCache         = (*stubFeedCache)(nil)
)
