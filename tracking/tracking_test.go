package tracking

import (
	"reflect"
	"testing"
	"time"

	"quickbite/models"
)

var created = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestTimelinePending(t *testing.T) {
	steps := Timeline(models.StatusPending, created)
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].Status != models.StatusPending || !steps[0].Timestamp.Equal(created) {
		t.Fatalf("unexpected first step: %+v", steps[0])
	}
	if steps[0].Actor != ActorSystem {
		t.Fatalf("pending step actor = %v, want system", steps[0].Actor)
	}
}

func TestTimelineConfirmedOffsets(t *testing.T) {
	steps := Timeline(models.StatusConfirmed, created)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if !steps[0].Timestamp.Equal(created) {
		t.Fatalf("pending offset = %v, want 0", steps[0].Timestamp.Sub(created))
	}
	if got := steps[1].Timestamp.Sub(created); got != 5*time.Minute {
		t.Fatalf("confirmed offset = %v, want 5m", got)
	}
}

func TestTimelineDeliveredIsFullTable(t *testing.T) {
	steps := Timeline(models.StatusDelivered, created)
	if len(steps) != 7 {
		t.Fatalf("expected 7 steps, got %d", len(steps))
	}
	if steps[6].Status != models.StatusDelivered {
		t.Fatalf("last step is %v, want delivered", steps[6].Status)
	}
	if got := steps[6].Timestamp.Sub(created); got != 45*time.Minute {
		t.Fatalf("delivered offset = %v, want 45m", got)
	}
}

func TestTimelineCancelledIsEmpty(t *testing.T) {
	if steps := Timeline(models.StatusCancelled, created); len(steps) != 0 {
		t.Fatalf("cancelled order should have no timeline, got %d steps", len(steps))
	}
}

func TestTimelineUnknownStatusIsEmpty(t *testing.T) {
	if steps := Timeline(models.OrderStatus("weird"), created); len(steps) != 0 {
		t.Fatalf("unknown status should have no timeline, got %d steps", len(steps))
	}
}

func TestTimelineIdempotent(t *testing.T) {
	a := Timeline(models.StatusOnWay, created)
	b := Timeline(models.StatusOnWay, created)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two reads differ:\n%+v\n%+v", a, b)
	}
}
