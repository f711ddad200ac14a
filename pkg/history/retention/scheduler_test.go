package retention

import (
	"context"
	"testing"
	"time"

	"mercator-hq/stencil/pkg/history"
)

func TestScheduler_StartStop(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantErr     bool
		wantRunning bool
	}{
		{name: "daily", schedule: "0 3 * * *", wantRunning: true},
		{name: "descriptor", schedule: "@hourly", wantRunning: true},
		{name: "empty schedule is a no-op", schedule: ""},
		{name: "invalid", schedule: "not a cron", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPruner(history.NewMemoryStorage(), &Config{RetentionDays: 1, PruneSchedule: tt.schedule})

			err := p.Start(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			defer p.Stop()

			if got := p.scheduler.IsRunning(); got != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", got, tt.wantRunning)
			}

			next := p.NextPruning()
			if tt.wantRunning {
				if next == nil || !next.After(time.Now()) {
					t.Errorf("NextPruning() = %v, want a future time", next)
				}
			} else if next != nil {
				t.Errorf("NextPruning() = %v, want nil", next)
			}
		})
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	p := NewPruner(history.NewMemoryStorage(), &Config{PruneSchedule: "@daily"})

	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for p.scheduler.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler still running after context cancel")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_DoubleStart(t *testing.T) {
	p := NewPruner(history.NewMemoryStorage(), &Config{PruneSchedule: "@daily"})
	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Stop()

	if err := p.Start(context.Background()); err == nil {
		t.Error("second Start() succeeded")
	}
}
