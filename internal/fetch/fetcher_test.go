package fetch

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllNeverExceedsWidth(t *testing.T) {
	var inFlight, peak int64
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}

	results := All(context.Background(), "thing", ids, 2, func(ctx context.Context, id string) (string, error) {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return id, nil
	})

	assert.Len(t, results, 10)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
}

func TestAllKeepsOnlySuccesses(t *testing.T) {
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}

	results := All(context.Background(), "thing", ids, 4, func(ctx context.Context, id string) (string, error) {
		if id == "id-3" || id == "id-7" {
			return "", fmt.Errorf("transient failure")
		}
		return id, nil
	})

	assert.Len(t, results, 8)
	assert.NotContains(t, results, "id-3")
	assert.NotContains(t, results, "id-7")
}

func TestAllEmptyInput(t *testing.T) {
	results := All(context.Background(), "thing", nil, 2, func(ctx context.Context, id string) (string, error) {
		t.Fatal("fetch fn called for empty input")
		return "", nil
	})

	assert.Empty(t, results)
}

func TestAllClampsWidth(t *testing.T) {
	results := All(context.Background(), "thing", []string{"a", "b"}, 0, func(ctx context.Context, id string) (string, error) {
		return id, nil
	})

	assert.Len(t, results, 2)
}
