package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	bidding "auction-market/internal/biddingService"
	"auction-market/internal/repository"

	"github.com/shopspring/decimal"
)

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumUsers        int
	NumListings     int
	ReadRatio       int // out of 10
	MaxBidIncrement int
	Burst           bool // if true, no delay between ops
}

// OperationMetrics collects latencies from concurrent workers
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()

	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)-1))]
	p99 = latencies[int(0.99*float64(len(latencies)-1))]
	return
}

// setupRepo creates a repository with numListings verified listings priced at 100
func setupRepo(numListings int) (*repository.MemoryRepo, *bidding.BiddingService) {
	repo, svc := newBenchService()
	for i := 0; i < numListings; i++ {
		repo.AddListing(benchListing(fmt.Sprintf("listing_%d", i), "seller", 100))
	}
	return repo, svc
}

func Benchmark_Load_BiddingSystem(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 200, 200, 0, 50, false},
		{"High-Contention-WriteHeavy", 500, 10, 0, 20, false},
		{"Mixed-Workload", 300, 50, 7, 30, false},
		{"ReadHeavy", 200, 50, 9, 20, false},
		{"Edge-Case-SingleListing", 100, 1, 5, 10, false},
		{"Peak-Burst", 500, 50, 0, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	_, svc := setupRepo(s.NumListings)
	ctx := context.Background()

	var totalOps, acceptedBids, rejectedBids, totalReads int64
	listingAccepted := make([]int64, s.NumListings)
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		for pb.Next() {
			index := rnd.Intn(s.NumListings)
			listingID := fmt.Sprintf("listing_%d", index)

			opStart := time.Now()
			if rnd.Intn(10) < s.ReadRatio {
				_, _ = svc.GetWinningBid(ctx, listingID)
				atomic.AddInt64(&totalReads, 1)
			} else {
				price := decimal.NewFromInt(int64(102 + rnd.Intn(s.MaxBidIncrement)))
				userID := fmt.Sprintf("user_%d", rnd.Intn(s.NumUsers))
				if _, _, err := svc.PlaceBid(ctx, listingID, userID, price); err != nil {
					atomic.AddInt64(&rejectedBids, 1)
				} else {
					atomic.AddInt64(&acceptedBids, 1)
					atomic.AddInt64(&listingAccepted[index], 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Listings: %d | Total Ops: %d | Accepted Bids: %d | Rejected Bids: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %d avg: %d max: %d p95: %d p99: %d | Memory Alloc: %.2f MB",
		s.Name, s.NumListings, totalOps, acceptedBids, rejectedBids, totalReads, elapsed,
		float64(totalOps)/elapsed.Seconds(),
		min.Microseconds(), avg.Microseconds(), max.Microseconds(), p95.Microseconds(), p99.Microseconds(),
		float64(mem.Alloc)/1024/1024,
	)

	busiest, busiestCount := -1, int64(0)
	for i, v := range listingAccepted {
		if v > busiestCount {
			busiest, busiestCount = i, v
		}
	}
	if busiest >= 0 {
		b.Logf("Busiest listing %d accepted %d bids", busiest, busiestCount)
	}
}
