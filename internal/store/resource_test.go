package store

import (
	"errors"
	"testing"

	"github.com/dkolesn/swapmart/internal/errs"
	"github.com/dkolesn/swapmart/internal/model"
)

func TestResource_Lifecycle(t *testing.T) {
	t.Parallel()

	var r resource[[]int]

	snap := r.snapshot()
	if snap.State != StateIdle || snap.Data != nil || snap.Err != nil {
		t.Fatalf("fresh resource must be idle/empty: %+v", snap)
	}

	r.begin()
	snap = r.snapshot()
	if !snap.Loading() || snap.Err != nil {
		t.Fatalf("begin must set loading and clear error: %+v", snap)
	}

	r.resolve([]int{1, 2})
	snap = r.snapshot()
	if snap.State != StateSuccess || len(snap.Data) != 2 || snap.Err != nil {
		t.Fatalf("resolve must install data and clear error: %+v", snap)
	}
	if snap.Loading() {
		t.Fatalf("loading must be false after resolution")
	}
}

func TestResource_FailureKeepsPriorData(t *testing.T) {
	t.Parallel()

	var r resource[[]int]
	r.resolve([]int{7})

	r.begin()
	r.fail(&model.APIError{Message: "down", Err: errs.ErrUnavailable})

	snap := r.snapshot()
	if snap.State != StateFailure || snap.Err == nil {
		t.Fatalf("fail must set failure state with error: %+v", snap)
	}
	if len(snap.Data) != 1 || snap.Data[0] != 7 {
		t.Fatalf("failure must leave prior data readable: %v", snap.Data)
	}
	if snap.Loading() {
		t.Fatalf("loading must be false after rejection")
	}

	// A new request clears the stale error immediately.
	r.begin()
	if snap = r.snapshot(); snap.Err != nil {
		t.Fatalf("begin must clear the previous error")
	}
}

func TestResource_LastWriteWins(t *testing.T) {
	t.Parallel()

	var r resource[[]int]
	// Two racing fetches: completions apply in arrival order, wholesale.
	r.begin()
	r.begin()
	r.resolve([]int{1})
	r.resolve([]int{2, 3})

	snap := r.snapshot()
	if len(snap.Data) != 2 {
		t.Fatalf("last completed fetch must win: %v", snap.Data)
	}
}

func TestResource_Reset(t *testing.T) {
	t.Parallel()

	var r resource[*model.Item]
	r.resolve(&model.Item{ID: 1})
	r.reset()

	snap := r.snapshot()
	if snap.State != StateIdle || snap.Data != nil || snap.Err != nil {
		t.Fatalf("reset must return to idle/empty: %+v", snap)
	}
}

func TestAsAPIError(t *testing.T) {
	t.Parallel()

	orig := &model.APIError{Message: "m", Err: errs.ErrNotFound}
	if got := asAPIError(orig); got != orig {
		t.Fatalf("existing APIError must pass through")
	}

	got := asAPIError(errors.New("plain"))
	if got.Message != "plain" || !errors.Is(got, errs.ErrUnavailable) {
		t.Fatalf("plain errors must normalize to transport failures: %+v", got)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	for s, want := range map[State]string{
		StateIdle: "idle", StateLoading: "loading", StateSuccess: "success", StateFailure: "failure",
	} {
		if s.String() != want {
			t.Fatalf("State(%d)=%q, want %q", s, s.String(), want)
		}
	}
}
