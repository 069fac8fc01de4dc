package behaviors

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu      sync.Mutex
	logs    []BehaviorLog
	failing bool
}

func (r *testRepo) Create(ctx context.Context, b BehaviorLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failing {
		return errors.New("repo: down")
	}
	r.logs = append(r.logs, b)
	return nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string) ([]BehaviorLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]BehaviorLog, 0)
	for _, b := range r.logs {
		if b.AnimalID == animalID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]BehaviorLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]BehaviorLog(nil), r.logs...), nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]BehaviorLog, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logs, len(r.logs), nil
}

func (r *testRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

type testFlagger struct {
	mu      sync.Mutex
	flagged []string
	status  map[string]string
	err     error
}

func (f *testFlagger) FlagNeedsAttention(ctx context.Context, animalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.flagged = append(f.flagged, animalID)
	if f.status == nil {
		f.status = map[string]string{}
	}
	f.status[animalID] = "needs_attention"
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Record_FlagsAnimal_OnCriticalBehavior(t *testing.T) {
	cases := []struct {
		name     string
		eating   Eating
		movement Movement
		mood     Mood
	}{
		{"eating none", EatingNone, MovementNormal, MoodCalm},
		{"movement limping", EatingNormal, MovementLimping, MoodCalm},
		{"mood aggressive", EatingNormal, MovementNormal, MoodAggressive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &testRepo{}
			flagger := &testFlagger{}
			svc := NewService(repo, flagger, nil)

			_, err := svc.Record(context.Background(), RecordInput{
				AnimalID:   "animal-1",
				Eating:     tc.eating,
				Movement:   tc.movement,
				Mood:       tc.mood,
				RecordedBy: "keeper-1",
			})
			if err != nil {
				t.Fatalf("Record: %v", err)
			}
			if len(flagger.flagged) != 1 || flagger.flagged[0] != "animal-1" {
				t.Fatalf("expected animal-1 flagged, got %v", flagger.flagged)
			}
		})
	}
}

func TestService_Record_DoesNotFlag_OnNormalBehavior(t *testing.T) {
	repo := &testRepo{}
	flagger := &testFlagger{}
	svc := NewService(repo, flagger, nil)

	_, err := svc.Record(context.Background(), RecordInput{
		AnimalID:   "animal-1",
		Eating:     EatingReduced,
		Movement:   MovementLethargic,
		Mood:       MoodDepressed,
		RecordedBy: "keeper-1",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(flagger.flagged) != 0 {
		t.Fatalf("expected no flag, got %v", flagger.flagged)
	}
	if len(repo.logs) != 1 {
		t.Fatalf("expected 1 log persisted, got %d", len(repo.logs))
	}
}

func TestService_Record_Succeeds_WhenFlagFails(t *testing.T) {
	repo := &testRepo{}
	flagger := &testFlagger{err: errors.New("animals: down")}
	svc := NewService(repo, flagger, nil)

	b, err := svc.Record(context.Background(), RecordInput{
		AnimalID:   "animal-1",
		Eating:     EatingNone,
		Movement:   MovementNormal,
		Mood:       MoodCalm,
		RecordedBy: "keeper-1",
	})
	// El flag es best-effort: el log quedó guardado y la llamada no falla.
	if err != nil {
		t.Fatalf("Record should not fail when flag fails: %v", err)
	}
	if len(repo.logs) != 1 || repo.logs[0].ID != b.ID {
		t.Fatalf("expected log persisted, got %v", repo.logs)
	}
}

func TestService_Record_RejectsUnknownVocabulary(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, &testFlagger{}, nil)

	_, err := svc.Record(context.Background(), RecordInput{
		AnimalID:   "animal-1",
		Eating:     Eating("Starving"),
		Movement:   MovementNormal,
		Mood:       MoodCalm,
		RecordedBy: "keeper-1",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.logs) != 0 {
		t.Fatalf("expected nothing persisted, got %d logs", len(repo.logs))
	}
}

func TestService_Record_RequiresAnimalAndRecorder(t *testing.T) {
	svc := NewService(&testRepo{}, &testFlagger{}, nil)

	_, err := svc.Record(context.Background(), RecordInput{
		Eating:     EatingNormal,
		Movement:   MovementNormal,
		Mood:       MoodCalm,
		RecordedBy: "keeper-1",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without animal, got %v", err)
	}

	_, err = svc.Record(context.Background(), RecordInput{
		AnimalID: "animal-1",
		Eating:   EatingNormal,
		Movement: MovementNormal,
		Mood:     MoodCalm,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without recorder, got %v", err)
	}
}

func TestService_Record_SetsTimestampFromClock(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, &testFlagger{}, nil)

	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	b, err := svc.Record(context.Background(), RecordInput{
		AnimalID:   "animal-1",
		Eating:     EatingNormal,
		Movement:   MovementNormal,
		Mood:       MoodCalm,
		RecordedBy: "keeper-1",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !b.CreatedAt.Equal(now) {
		t.Fatalf("expected CreatedAt %v, got %v", now, b.CreatedAt)
	}
}

func TestService_ListAll_ReturnsEveryLog(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, &testFlagger{}, nil)

	// Más registros que cualquier página del listado filtrado.
	for i := 0; i < 1001; i++ {
		_, err := svc.Record(context.Background(), RecordInput{
			AnimalID:   "animal-1",
			Eating:     EatingNormal,
			Movement:   MovementNormal,
			Mood:       MoodCalm,
			RecordedBy: "keeper-1",
		})
		if err != nil {
			t.Fatalf("Record #%d: %v", i, err)
		}
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1001 {
		t.Fatalf("expected 1001 logs, got %d", len(all))
	}
}

func TestService_Record_ConcurrentWrites_LastWriteWins(t *testing.T) {
	repo := &testRepo{}
	flagger := &testFlagger{}
	svc := NewService(repo, flagger, nil)

	// Dos registros simultáneos sobre el mismo animal: no hay lock por
	// animal, así que el estado final es el del flag que llegue último
	// (last-write-wins). Ambos logs deben quedar persistidos igualmente.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.Record(context.Background(), RecordInput{
			AnimalID:   "animal-1",
			Eating:     EatingNone,
			Movement:   MovementNormal,
			Mood:       MoodCalm,
			RecordedBy: "keeper-1",
		})
		if err != nil {
			t.Errorf("Record (critical): %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		_, err := svc.Record(context.Background(), RecordInput{
			AnimalID:   "animal-1",
			Eating:     EatingNormal,
			Movement:   MovementNormal,
			Mood:       MoodCalm,
			RecordedBy: "keeper-2",
		})
		if err != nil {
			t.Errorf("Record (normal): %v", err)
		}
	}()
	wg.Wait()

	if got := repo.count(); got != 2 {
		t.Fatalf("expected both logs persisted, got %d", got)
	}
	// Solo el registro crítico marca al animal; el normal no lo limpia.
	if len(flagger.flagged) != 1 || flagger.flagged[0] != "animal-1" {
		t.Fatalf("expected exactly one flag for animal-1, got %v", flagger.flagged)
	}
	if flagger.status["animal-1"] != "needs_attention" {
		t.Fatalf("expected animal-1 in needs_attention, got %q", flagger.status["animal-1"])
	}
}

func TestNeedsAttention_Predicate(t *testing.T) {
	if NeedsAttention(EatingNormal, MovementNormal, MoodCalm) {
		t.Fatal("normal behavior should not need attention")
	}
	if NeedsAttention(EatingReduced, MovementLethargic, MoodDepressed) {
		t.Fatal("non-critical combination should not need attention")
	}
	if !NeedsAttention(EatingNone, MovementNormal, MoodCalm) {
		t.Fatal("eating None must need attention")
	}
	if !NeedsAttention(EatingNormal, MovementLimping, MoodCalm) {
		t.Fatal("movement Limping must need attention")
	}
	if !NeedsAttention(EatingNormal, MovementNormal, MoodAggressive) {
		t.Fatal("mood Aggressive must need attention")
	}
}
