package service

import (
	"context"
	"testing"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

type feedHarness struct {
	svc      *FeedService
	users    *stubUserRepo
	requests *stubRequestRepo
	cache    *stubFeedCache
}

func newFeedHarness(users ...*domain.User) *feedHarness {
	h := &feedHarness{
		users:    newStubUserRepo(users...),
		requests: newStubRequestRepo(),
		cache:    newStubFeedCache(),
	}
	h.svc = NewFeedService(h.users, h.requests, NewInsertionOrderRanker(), h.cache, discardLogger)
	return h
}

func (h *feedHarness) seedRequest(t *testing.T, from, to string, signal domain.Signal, status domain.RequestStatus) {
	t.Helper()
	err := h.requests.Insert(context.Background(), &domain.ConnectionRequest{
		ID:         from + ":" + to,
		FromUserID: from,
		ToUserID:   to,
		PairKey:    domain.PairKey(from, to),
		Signal:     signal,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("seed request failed: %v", err)
	}
}

func feedIDs(t *testing.T, h *feedHarness, viewerID string, limit int) []string {
	t.Helper()
	users, err := h.svc.GetFeed(context.Background(), viewerID, limit)
	if err != nil {
		t.Fatalf("GetFeed(%s) returned error: %v", viewerID, err)
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestGetFeed_ExcludesSelfAndInvolvedUsers(t *testing.T) {
	h := newFeedHarness(
		testUser("alice", "Alice"),
		testUser("bob", "Bob"),
		testUser("carol", "Carol"),
		testUser("dave", "Dave"),
		testUser("erin", "Erin"),
	)
	h.seedRequest(t, "alice", "bob", domain.SignalInterested, domain.StatusPending)
	h.seedRequest(t, "carol", "alice", domain.SignalInterested, domain.StatusAccepted)

	ids := feedIDs(t, h, "alice", 0)
	if len(ids) != 2 || ids[0] != "dave" || ids[1] != "erin" {
		t.Fatalf("feed should contain only dave and erin, got %v", ids)
	}
}

func TestGetFeed_IncomingPendingExcludesSender(t *testing.T) {
	h := newFeedHarness(testUser("alice", "Alice"), testUser("bob", "Bob"), testUser("carol", "Carol"))
	h.seedRequest(t, "bob", "alice", domain.SignalInterested, domain.StatusPending)

	ids := feedIDs(t, h, "alice", 0)
	if len(ids) != 1 || ids[0] != "carol" {
		t.Fatalf("sender of an incoming pending request must not appear, got %v", ids)
	}
}

func TestGetFeed_IgnoreIsDirectional(t *testing.T) {
	h := newFeedHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))
	h.seedRequest(t, "alice", "bob", domain.SignalIgnored, domain.StatusRejected)

	if ids := feedIDs(t, h, "alice", 0); len(ids) != 0 {
		t.Fatalf("ignored user must never reappear in the ignorer's feed, got %v", ids)
	}
	if ids := feedIDs(t, h, "bob", 0); len(ids) != 1 || ids[0] != "alice" {
		t.Fatalf("the ignorer must stay visible to the ignored user, got %v", ids)
	}
}

func TestGetFeed_StableAcrossCalls(t *testing.T) {
	h := newFeedHarness(testUser("alice", "Alice"), testUser("bob", "Bob"), testUser("carol", "Carol"))

	first := feedIDs(t, h, "alice", 0)

	// A user added after the first read must not change the cached batch.
	h.users.add(testUser("dave", "Dave"))

	second := feedIDs(t, h, "alice", 0)
	if len(first) != len(second) {
		t.Fatalf("feed changed between calls: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("feed changed between calls: %v vs %v", first, second)
		}
	}
}

func TestGetFeed_RecomputesAfterInvalidation(t *testing.T) {
	h := newFeedHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))

	if ids := feedIDs(t, h, "alice", 0); len(ids) != 1 {
		t.Fatalf("expected one candidate, got %v", ids)
	}

	h.users.add(testUser("carol", "Carol"))
	if err := h.cache.Invalidate(context.Background(), "alice"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	ids := feedIDs(t, h, "alice", 0)
	if len(ids) != 2 {
		t.Fatalf("invalidated feed should pick up the new user, got %v", ids)
	}
}

func TestGetFeed_CacheHitDropsMissingProfiles(t *testing.T) {
	h := newFeedHarness(testUser("alice", "Alice"), testUser("bob", "Bob"), testUser("carol", "Carol"))

	if err := h.cache.Set(context.Background(), "alice", []string{"carol", "bob", "ghost"}); err != nil {
		t.Fatalf("cache set failed: %v", err)
	}

	ids := feedIDs(t, h, "alice", 0)
	if len(ids) != 2 || ids[0] != "carol" || ids[1] != "bob" {
		t.Fatalf("cache order must be preserved and missing ids dropped, got %v", ids)
	}
}

func TestGetFeed_LimitBounds(t *testing.T) {
	var seed []*domain.User
	seed = append(seed, testUser("viewer", "Viewer"))
	for i := 0; i < feedBatchSize; i++ {
		seed = append(seed, testUser(string(rune('a'+i%26))+string(rune('0'+i/26)), "U"))
	}
	h := newFeedHarness(seed...)

	if ids := feedIDs(t, h, "viewer", 0); len(ids) != defaultFeedLimit {
		t.Fatalf("zero limit should default to %d, got %d", defaultFeedLimit, len(ids))
	}
	if ids := feedIDs(t, h, "viewer", 1000); len(ids) != maxFeedLimit {
		t.Fatalf("oversized limit should clamp to %d, got %d", maxFeedLimit, len(ids))
	}
	if ids := feedIDs(t, h, "viewer", 3); len(ids) != 3 {
		t.Fatalf("explicit limit not honored, got %d", len(ids))
	}
}

func TestGetFeed_CacheFailuresAreNonFatal(t *testing.T) {
	h := newFeedHarness(testUser("alice", "Alice"), testUser("bob", "Bob"))
	h.cache.getErr = context.DeadlineExceeded
	h.cache.setErr = context.DeadlineExceeded

	ids := feedIDs(t, h, "alice", 0)
	if len(ids) != 1 || ids[0] != "bob" {
		t.Fatalf("feed must survive a broken cache, got %v", ids)
	}
}
