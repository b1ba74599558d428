package handlers

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"flowz-server/internal/batchgen"
	"flowz-server/internal/domain"
	"flowz-server/internal/infra"
	"flowz-server/internal/providers/genai"

	"github.com/rs/zerolog"
)

type stubGenerator struct {
	mu     sync.Mutex
	hasKey bool
	text   string
	err    error
	calls  int
}

func (g *stubGenerator) HasKey() bool { return g.hasKey }

func (g *stubGenerator) GenerateText(ctx context.Context, req genai.TextRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.text, g.err
}

func (g *stubGenerator) GenerateVision(ctx context.Context, req genai.VisionRequest) (string, error) {
	return g.GenerateText(ctx, genai.TextRequest{Prompt: req.Prompt})
}

type stubJobs struct {
	mu       sync.Mutex
	jobs     map[string]*domain.BatchJob
	items    map[string][]domain.BatchJobItem
	itemsErr error
}

func newStubJobs() *stubJobs {
	return &stubJobs{
		jobs:  make(map[string]*domain.BatchJob),
		items: make(map[string][]domain.BatchJobItem),
	}
}

func (s *stubJobs) CreateJob(ctx context.Context, job *domain.BatchJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = "job-test"
	job.Status = domain.BatchJobPending
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	s.jobs[job.ID] = job
	return nil
}

func (s *stubJobs) CreateItems(ctx context.Context, jobID string, productIDs []string) ([]domain.BatchJobItem, error) {
	if s.itemsErr != nil {
		return nil, s.itemsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.BatchJobItem, 0, len(productIDs))
	for i, pid := range productIDs {
		items = append(items, domain.BatchJobItem{
			ID:        "item-" + string(rune('a'+i)),
			JobID:     jobID,
			ProductID: pid,
			Status:    domain.BatchItemPending,
		})
	}
	s.items[jobID] = items
	return items, nil
}

func (s *stubJobs) MarkJobRunning(ctx context.Context, jobID string) error {
	s.setStatus(jobID, domain.BatchJobRunning)
	return nil
}

func (s *stubJobs) UpdateJobProgress(ctx context.Context, jobID string, processed, successful, failed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		job.ProcessedItems = processed
		job.SuccessfulItems = successful
		job.FailedItems = failed
	}
	return nil
}

func (s *stubJobs) FinishJob(ctx context.Context, jobID string, status domain.BatchJobStatus, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		job.Status = status
		job.ErrorMessage = errMsg
	}
	return nil
}

func (s *stubJobs) UpdateItemStatus(ctx context.Context, itemID string, status domain.BatchItemStatus, errMsg string) error {
	return nil
}

func (s *stubJobs) GetJobForUser(ctx context.Context, jobID, userID string) (*domain.BatchJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok || job.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func (s *stubJobs) ListItems(ctx context.Context, jobID string) ([]domain.BatchJobItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[jobID], nil
}

func (s *stubJobs) FailAbandoned(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

func (s *stubJobs) setStatus(jobID string, status domain.BatchJobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		job.Status = status
	}
}

type stubProducts struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	versions map[string][]domain.ProductVersion
	drafts   map[string]map[string]any
}

func newStubProducts(products ...*domain.Product) *stubProducts {
	s := &stubProducts{
		products: make(map[string]*domain.Product),
		versions: make(map[string][]domain.ProductVersion),
		drafts:   make(map[string]map[string]any),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *stubProducts) GetForStore(ctx context.Context, productID, storeID string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok || p.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProducts) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:], nil
}

func (s *stubProducts) UpdateDraft(ctx context.Context, productID string, draft map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[productID] = draft
	if p, ok := s.products[productID]; ok {
		p.DraftContent = draft
	}
	return nil
}

func (s *stubProducts) ListVersions(ctx context.Context, productID string) ([]domain.ProductVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[productID], nil
}

func (s *stubProducts) GetVersion(ctx context.Context, productID string, version int) (*domain.ProductVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.versions[productID] {
		if s.versions[productID][i].Version == version {
			return &s.versions[productID][i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) CreateVersion(ctx context.Context, productID, createdBy string, snapshot map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw := mustMarshal(snapshot)
	next := len(s.versions[productID]) + 1
	s.versions[productID] = append(s.versions[productID], domain.ProductVersion{
		ID:        "ver-" + string(rune('0'+next)),
		ProductID: productID,
		Version:   next,
		Snapshot:  raw,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	})
	return nil
}

type stubStores struct {
	stores map[string]*domain.Store
}

func newStubStores(stores ...*domain.Store) *stubStores {
	s := &stubStores{stores: make(map[string]*domain.Store)}
	for _, st := range stores {
		s.stores[st.ID] = st
	}
	return s
}

func (s *stubStores) GetForOwner(ctx context.Context, storeID, userID string) (*domain.Store, error) {
	st, ok := s.stores[storeID]
	if !ok || st.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func (s *stubStores) ListByOwner(ctx context.Context, userID string) ([]domain.Store, error) {
	var out []domain.Store
	for _, st := range s.stores {
		if st.UserID == userID {
			out = append(out, *st)
		}
	}
	return out, nil
}

func mustMarshal(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

func discardLogger() infra.Logger {
	return infra.Logger(zerolog.New(io.Discard))
}

func newTestApp(jobs *stubJobs, products *stubProducts, stores *stubStores, gen *stubGenerator) *App {
	logger := discardLogger()
	return &App{
		Logger:         logger,
		JWTSecret:      "test-secret",
		Jobs:           jobs,
		Products:       products,
		Stores:         stores,
		Orchestrator:   batchgen.New(gen, jobs, products, nil, logger),
		Generator:      gen,
		HeartbeatEvery: time.Minute,
	}
}
