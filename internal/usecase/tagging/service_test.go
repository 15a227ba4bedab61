package tagging

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
	domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"
	"github.com/atelier-cloud/tagsmith/internal/usecase/dedup"
	"github.com/atelier-cloud/tagsmith/internal/usecase/extract"
	"github.com/atelier-cloud/tagsmith/internal/usecase/seo"
)

// --- Mocks ---

type mockClassifier struct {
	mu     sync.Mutex
	labels map[string][]string // imageRef -> labels
	calls  []string
	delay  time.Duration
}

func (m *mockClassifier) Classify(_ context.Context, imageRef string) []string {
	m.mu.Lock()
	m.calls = append(m.calls, imageRef)
	m.mu.Unlock()
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.labels[imageRef]
}

func (m *mockClassifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func newService(t *testing.T, c domtag.Classifier) *Service {
	t.Helper()
	reg := registry.Default()
	return New(c, extract.New(), dedup.New(reg), seo.New(reg), zap.NewNop())
}

func mustRequest(t *testing.T, id, img string, existing []string, name, desc string) domtag.Request {
	t.Helper()
	req, err := domtag.NewRequest(id, img, existing, name, desc)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return req
}

// --- Per-product pipeline ---

func TestAutoTag_CombinesClassifierAndText(t *testing.T) {
	c := &mockClassifier{labels: map[string][]string{
		"img-1": {"formal", "navy", "wool"},
	}}
	svc := newService(t, c)

	req := mustRequest(t, "p1", "img-1", []string{"Navy"}, "Slim Suit", "great for weddings")
	res := svc.AutoTag(context.Background(), req)

	// Classifier labels come first, then text candidates in vocab order.
	wantSuggested := []string{"formal", "navy", "wool", "wedding", "slim", "suit"}
	if !reflect.DeepEqual(res.SuggestedTags(), wantSuggested) {
		t.Errorf("SuggestedTags = %v, want %v", res.SuggestedTags(), wantSuggested)
	}

	// "navy" duplicates the existing tag; everything else is new.
	wantAdded := []string{"formal", "wool", "wedding", "slim", "suit"}
	if !reflect.DeepEqual(res.AddedTags(), wantAdded) {
		t.Errorf("AddedTags = %v, want %v", res.AddedTags(), wantAdded)
	}
	if !reflect.DeepEqual(res.SkippedTags(), []string{"navy"}) {
		t.Errorf("SkippedTags = %v", res.SkippedTags())
	}
	if len(res.ConflictTags()) != 0 {
		t.Errorf("ConflictTags = %v, want none", res.ConflictTags())
	}
	if res.SEOScore() <= 0 || res.SEOScore() > 100 {
		t.Errorf("SEOScore = %d", res.SEOScore())
	}
}

func TestAutoTag_NoImageSkipsClassifier(t *testing.T) {
	c := &mockClassifier{}
	svc := newService(t, c)

	req := mustRequest(t, "p1", "", nil, "Charcoal Blazer", "")
	res := svc.AutoTag(context.Background(), req)

	if c.callCount() != 0 {
		t.Errorf("classifier called %d times for image-less product", c.callCount())
	}
	if !reflect.DeepEqual(res.AddedTags(), []string{"charcoal", "blazer"}) {
		t.Errorf("AddedTags = %v", res.AddedTags())
	}
}

func TestAutoTag_EmptyClassifierStillProducesResult(t *testing.T) {
	c := &mockClassifier{} // empty labels for every ref
	svc := newService(t, c)

	req := mustRequest(t, "p1", "img-404", []string{"Navy"}, "", "")
	res := svc.AutoTag(context.Background(), req)

	if !reflect.DeepEqual(res.OriginalTags(), []string{"Navy"}) {
		t.Errorf("OriginalTags = %v", res.OriginalTags())
	}
	if len(res.AddedTags()) != 0 || len(res.SuggestedTags()) != 0 {
		t.Errorf("degraded run suggested %v added %v", res.SuggestedTags(), res.AddedTags())
	}
}

// --- Batch orchestrator ---

func TestBulkAutoTag_AllItemsTagged(t *testing.T) {
	c := &mockClassifier{labels: map[string][]string{
		"img-1": {"navy"}, "img-2": {"wedding"}, "img-3": {"slim"},
	}}
	svc := newService(t, c).WithChunkDelay(0)

	reqs := []domtag.Request{
		mustRequest(t, "p1", "img-1", nil, "", ""),
		mustRequest(t, "p2", "img-2", nil, "", ""),
		mustRequest(t, "p3", "img-3", nil, "", ""),
	}
	results := svc.BulkAutoTag(context.Background(), reqs)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	p2 := results["p2"]
	if got := p2.AddedTags(); !reflect.DeepEqual(got, []string{"wedding"}) {
		t.Errorf("p2 added = %v", got)
	}
}

func TestBulkAutoTag_PanickingItemIsolated(t *testing.T) {
	good := &mockClassifier{labels: map[string][]string{"img": {"navy"}}}
	svc := newService(t, &selectiveClassifier{inner: good, panicOn: "img-bad"}).
		WithChunkSize(2).WithChunkDelay(0)

	reqs := []domtag.Request{
		mustRequest(t, "p1", "img", nil, "", ""),
		mustRequest(t, "p2", "img-bad", nil, "", ""),
		mustRequest(t, "p3", "img", nil, "", ""),
	}
	results := svc.BulkAutoTag(context.Background(), reqs)

	if _, ok := results["p2"]; ok {
		t.Error("failed item should be omitted from the result map")
	}
	if _, ok := results["p1"]; !ok {
		t.Error("sibling p1 missing")
	}
	if _, ok := results["p3"]; !ok {
		t.Error("next-chunk item p3 missing")
	}
}

func TestBulkAutoTag_CancelledBetweenChunks(t *testing.T) {
	c := &mockClassifier{labels: map[string][]string{"img": {"navy"}}}
	svc := newService(t, c).WithChunkSize(1).WithChunkDelay(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	reqs := []domtag.Request{
		mustRequest(t, "p1", "img", nil, "", ""),
		mustRequest(t, "p2", "img", nil, "", ""),
	}
	results := svc.BulkAutoTag(ctx, reqs)

	// First chunk completed, the hour-long pause was cancelled, second
	// chunk never started.
	if _, ok := results["p1"]; !ok {
		t.Error("p1 missing from partial results")
	}
	if _, ok := results["p2"]; ok {
		t.Error("p2 should not run after cancellation")
	}
}

func TestBulkAutoTag_Empty(t *testing.T) {
	svc := newService(t, &mockClassifier{}).WithChunkDelay(0)
	if got := svc.BulkAutoTag(context.Background(), nil); len(got) != 0 {
		t.Errorf("BulkAutoTag(nil) = %v", got)
	}
}

// selectiveClassifier panics for one image ref and delegates otherwise.
type selectiveClassifier struct {
	inner   domtag.Classifier
	panicOn string
}

func (s *selectiveClassifier) Classify(ctx context.Context, imageRef string) []string {
	if imageRef == s.panicOn {
		panic("boom")
	}
	return s.inner.Classify(ctx, imageRef)
}
