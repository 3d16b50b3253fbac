package storage

import (
	"context"
	"sync"

	"github.com/Thys1a/WebAccounting/internal/service"
)

// notifier fans committed-batch snapshots out to subscribers, mirroring the
// document store's live query semantics: every push is a full, ordered
// collection view. Under backpressure the pending snapshot is replaced by
// the newer one, so consumers may skip states but never see partial ones.
type notifier struct {
	subs   map[subKey]map[int]chan service.Snapshot
	mu     sync.Mutex
	nextID int
	seq    uint64
	closed bool
}

type subKey struct {
	userID     string
	collection service.Collection
}

func newNotifier() *notifier {
	return &notifier{
		subs: make(map[subKey]map[int]chan service.Snapshot),
	}
}

func (n *notifier) subscribe(ctx context.Context, userID string, collection service.Collection) (<-chan service.Snapshot, func()) {
	ch := make(chan service.Snapshot, 1)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	key := subKey{userID: userID, collection: collection}
	if n.subs[key] == nil {
		n.subs[key] = make(map[int]chan service.Snapshot)
	}
	id := n.nextID
	n.nextID++
	n.subs[key][id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if subs, ok := n.subs[key]; ok {
				if _, live := subs[id]; live {
					delete(subs, id)
					close(ch)
				}
			}
			n.mu.Unlock()
		})
	}

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	return ch, cancel
}

func (n *notifier) publish(userID string, collection service.Collection, snap service.Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	n.seq++
	snap.Seq = n.seq

	for _, ch := range n.subs[subKey{userID: userID, collection: collection}] {
		select {
		case ch <- snap:
		default:
			// Drop the stale pending snapshot, then deliver the newer one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (n *notifier) closeAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for _, subs := range n.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
}
