package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	byTN   map[string][]string
	done   chan struct{}
	expect int
	seen   int
	err    error
}

func newRecordingService(expect int) *recordingService {
	return &recordingService{byTN: map[string][]string{}, done: make(chan struct{}), expect: expect}
}

func (s *recordingService) Refresh(_ context.Context, req ports.RefreshRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTN[req.TrackingNumber] = append(s.byTN[req.TrackingNumber], req.JobID)
	s.seen++
	if s.seen == s.expect {
		close(s.done)
	}
	return s.err
}

func TestDispatcher_ProcessesEveryRequestInOrderPerTrackingNumber(t *testing.T) {
	svc := newRecordingService(30)
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	var reqs []ports.RefreshRequest
	for job := 0; job < 3; job++ {
		for tn := 0; tn < 10; tn++ {
			reqs = append(reqs, ports.RefreshRequest{
				JobID:          fmt.Sprintf("job-%d", job),
				TrackingNumber: fmt.Sprintf("TN%d", tn),
			})
		}
	}
	if n, err := d.EnqueueBatch(ctx, reqs); err != nil || n != len(reqs) {
		t.Fatalf("enqueue: accepted %d, err %v", n, err)
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refreshes")
	}
	cancel()
	d.Wait()

	for tn, jobs := range svc.byTN {
		if len(jobs) != 3 || jobs[0] != "job-0" || jobs[1] != "job-1" || jobs[2] != "job-2" {
			t.Errorf("%s: unexpected order %v", tn, jobs)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	for _, tn := range []string{"A", "160-12345678", "1Z999AA10123456784"} {
		first := d.shardIndex(tn)
		if first < 0 || first >= defaultWorkers {
			t.Fatalf("shard out of range: %d", first)
		}
		if d.shardIndex(tn) != first {
			t.Errorf("shard for %s not stable", tn)
		}
	}
}

func TestDispatcher_FailuresDoNotStopWorker(t *testing.T) {
	svc := newRecordingService(2)
	svc.err = errors.New("upstream down")
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	_ = d.Enqueue(ctx, ports.RefreshRequest{TrackingNumber: "A"})
	_ = d.Enqueue(ctx, ports.RefreshRequest{TrackingNumber: "B"})

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped after a failure")
	}
}

func TestDispatcher_EnqueueHonoursContext(t *testing.T) {
	d := NewDispatcher(1, newRecordingService(0), zerolog.Nop())
	// Workers are not started, so the buffer fills up.
	for i := 0; i < channelBuffer; i++ {
		if err := d.Enqueue(context.Background(), ports.RefreshRequest{TrackingNumber: "X"}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Enqueue(ctx, ports.RefreshRequest{TrackingNumber: "X"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDispatcher_EnqueueBatchReportsAccepted(t *testing.T) {
	d := NewDispatcher(1, newRecordingService(0), zerolog.Nop())
	// Workers are not started; leave room for exactly one more request.
	for i := 0; i < channelBuffer-1; i++ {
		if err := d.Enqueue(context.Background(), ports.RefreshRequest{TrackingNumber: "X"}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	batch := []ports.RefreshRequest{{TrackingNumber: "A"}, {TrackingNumber: "B"}, {TrackingNumber: "C"}}

	n, err := d.EnqueueBatch(ctx, batch)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 accepted request, got %d", n)
	}
}
