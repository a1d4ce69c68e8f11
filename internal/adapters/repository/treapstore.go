package repository

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/podium/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: XP DESC, then profile ID ASC. "less" means ranks earlier, so an
// in-order walk yields the leaderboard from best to worst. Ranks are dense:
// equal XP shares a rank and the next XP value takes the following one.

type node struct {
	id    string
	xp    int
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func less(aXP int, aID string, bXP int, bID string) bool {
	if aXP != bXP {
		return aXP > bXP
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, xp int, prio uint64) *node {
	if n == nil {
		return &node{id: id, xp: xp, prio: prio, size: 1}
	}
	if less(xp, id, n.xp, n.id) {
		n.left = insert(n.left, id, xp, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, xp, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, xp int) *node {
	if n == nil {
		return nil
	}
	switch {
	case xp == n.xp && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, xp)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, xp)
		}
	case less(xp, id, n.xp, n.id):
		n.left = deleteNode(n.left, id, xp)
	default:
		n.right = deleteNode(n.right, id, xp)
	}
	fix(n)
	return n
}

// collectTopN appends up to limit nodes in rank order.
func collectTopN(n *node, limit int, out *[]*node) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n)
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// TreapStore ranks standings in a treap keyed by (XP desc, id asc).
type TreapStore struct {
	mu    sync.RWMutex
	root  *node
	byID  map[string]Standing
	xpSet map[int]int // xp -> number of profiles holding it
	rng   *rand.Rand
	seed  uint64

	metricsUpdateInterval time.Duration
	wg                    sync.WaitGroup
	stopChan              chan struct{}
	stopOnce              sync.Once
}

// NewTreapStore constructs a treap store and starts its metrics updater,
// which stops with ctx or Close.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		byID:                  make(map[string]Standing),
		xpSet:                 make(map[int]int),
		seed:                  uint64(time.Now().UnixNano()),
		metricsUpdateInterval: 5 * time.Second,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))

	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background metrics goroutine.
func (s *TreapStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// Upsert implements Store.Upsert in O(log n) expected time.
func (s *TreapStore) Upsert(_ context.Context, st Standing) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLeaderboardUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if st.ProfileID == "" {
		metrics.RecordErrorByComponent("repository", "invalid_id")
		return false, ErrInvalidID
	}
	if st.XP < 0 {
		st.XP = 0
	}

	s.mu.Lock()
	old, exists := s.byID[st.ProfileID]
	changed := !exists || old.XP != st.XP
	if changed {
		if exists {
			s.root = deleteNode(s.root, old.ProfileID, old.XP)
			s.dropXP(old.XP)
		}
		s.root = insert(s.root, st.ProfileID, st.XP, s.rng.Uint64())
		s.xpSet[st.XP]++
	}
	s.byID[st.ProfileID] = st
	count := len(s.byID)
	s.mu.Unlock()

	if changed {
		metrics.RecordLeaderboardUpdate()
	}
	if !exists {
		metrics.UpdateLeaderboardSize(count)
	}
	return changed, nil
}

func (s *TreapStore) dropXP(xp int) {
	if s.xpSet[xp] <= 1 {
		delete(s.xpSet, xp)
		return
	}
	s.xpSet[xp]--
}

// Rank returns the dense rank of a profile in O(distinct XP values).
func (s *TreapStore) Rank(_ context.Context, profileID string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLeaderboardQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.byID[profileID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}
	return Entry{Rank: s.denseRank(st.XP), Standing: st}, nil
}

func (s *TreapStore) denseRank(xp int) int {
	rank := 1
	for other := range s.xpSet {
		if other > xp {
			rank++
		}
	}
	return rank
}

// TopN returns the top N entries.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLeaderboardQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*node, 0, min(n, len(s.byID)))
	collectTopN(s.root, n, &nodes)

	out := make([]Entry, 0, len(nodes))
	for _, nd := range nodes {
		out = append(out, Entry{Standing: s.byID[nd.id]})
	}
	assignRanksWithTies(out)
	return out, nil
}

// Count returns the number of ranked profiles.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateLeaderboardSize(s.Count(ctx))
			}
		}
	}()
}

// assignRanksWithTies assigns consecutive ranks starting at 1; entries with
// equal XP share a rank.
func assignRanksWithTies(entries []Entry) {
	rank := 1
	for i := range entries {
		if i > 0 && entries[i].XP != entries[i-1].XP {
			rank++
		}
		entries[i].Rank = rank
	}
}
