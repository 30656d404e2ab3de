package application_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock CredentialStore ---

type mockCredentialStore struct {
	mu       sync.Mutex
	session  model.Session
	saveErr  error
	clearErr error
	saves    int
	clears   int
}

func (m *mockCredentialStore) Load(_ context.Context) model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *mockCredentialStore) Save(_ context.Context, session model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = session
	return nil
}

func (m *mockCredentialStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.session = model.Session{}
	return m.clearErr
}

// blockingCredentialStore announces each Load on loading and holds it until
// release is closed.
type blockingCredentialStore struct {
	mockCredentialStore
	loading chan struct{}
	release chan struct{}
}

func (m *blockingCredentialStore) Load(ctx context.Context) model.Session {
	snapshot := m.mockCredentialStore.Load(ctx)
	m.loading <- struct{}{}
	<-m.release
	return snapshot
}

// --- Mock AuthAPI ---

type mockAuthAPI struct {
	mu        sync.Mutex
	principal model.Principal
	token     string
	err       error
	calls     int
}

func (m *mockAuthAPI) Login(_ context.Context, _ model.Credentials) (model.Principal, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return model.Principal{}, "", m.err
	}
	return m.principal, m.token, nil
}

// --- Mock TokenAuthorizer ---

type mockTokenAuthorizer struct {
	mu    sync.Mutex
	token string
	sets  int
}

func (m *mockTokenAuthorizer) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.token = token
}

func (m *mockTokenAuthorizer) ClearToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}

func (m *mockTokenAuthorizer) current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// --- Mock ProductAPI ---

type mockProductAPI struct {
	mu sync.Mutex

	products   []model.Product
	featured   []model.Product
	byCategory map[string][]model.Product
	byID       map[string]model.Product
	search     []model.Product

	listErr     error
	featuredErr error
	categoryErr error
	getErr      error
	writeErr    error

	calls       []string
	lastForm    model.ProductForm
	lastImage   *model.ImageUpload
	lastQuery   string
	lastDeleted string
}

func (m *mockProductAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockProductAPI) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockProductAPI) ListProducts(_ context.Context) ([]model.Product, error) {
	m.record("list")
	return m.products, m.listErr
}

func (m *mockProductAPI) FeaturedProducts(_ context.Context) ([]model.Product, error) {
	m.record("featured")
	return m.featured, m.featuredErr
}

func (m *mockProductAPI) GetProduct(_ context.Context, id string) (model.Product, error) {
	m.record("get:" + id)
	if m.getErr != nil {
		return model.Product{}, m.getErr
	}
	p, ok := m.byID[id]
	if !ok {
		return model.Product{}, &model.APIError{Message: "Product not found"}
	}
	return p, nil
}

func (m *mockProductAPI) ProductsByCategory(_ context.Context, category string) ([]model.Product, error) {
	m.record("category:" + category)
	if m.categoryErr != nil {
		return nil, m.categoryErr
	}
	return m.byCategory[category], nil
}

func (m *mockProductAPI) SearchProducts(_ context.Context, query string) ([]model.Product, error) {
	m.record("search")
	m.lastQuery = query
	return m.search, nil
}

func (m *mockProductAPI) CreateProduct(_ context.Context, form model.ProductForm, image *model.ImageUpload) (model.Product, error) {
	m.record("create")
	m.lastForm, m.lastImage = form, image
	if m.writeErr != nil {
		return model.Product{}, m.writeErr
	}
	return model.Product{ID: 100, Name: form.Name}, nil
}

func (m *mockProductAPI) UpdateProduct(_ context.Context, id string, form model.ProductForm, image *model.ImageUpload) (model.Product, error) {
	m.record("update:" + id)
	m.lastForm, m.lastImage = form, image
	if m.writeErr != nil {
		return model.Product{}, m.writeErr
	}
	return model.Product{Name: form.Name}, nil
}

func (m *mockProductAPI) DeleteProduct(_ context.Context, id string) error {
	m.record("delete:" + id)
	m.lastDeleted = id
	return m.writeErr
}

// --- Mock CategoryAPI ---

type mockCategoryAPI struct {
	mu         sync.Mutex
	categories []model.Category
	listErr    error
	writeErr   error
	calls      []string
	lastInput  model.CategoryInput
}

func (m *mockCategoryAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockCategoryAPI) ListCategories(_ context.Context) ([]model.Category, error) {
	m.record("list")
	return m.categories, m.listErr
}

func (m *mockCategoryAPI) CreateCategory(_ context.Context, input model.CategoryInput) (model.Category, error) {
	m.record("create")
	m.lastInput = input
	if m.writeErr != nil {
		return model.Category{}, m.writeErr
	}
	return model.Category{ID: 7, Name: input.Name, Description: input.Description}, nil
}

func (m *mockCategoryAPI) UpdateCategory(_ context.Context, _ int64, input model.CategoryInput) (model.Category, error) {
	m.record("update")
	m.lastInput = input
	if m.writeErr != nil {
		return model.Category{}, m.writeErr
	}
	return model.Category{ID: 7, Name: input.Name}, nil
}

func (m *mockCategoryAPI) DeleteCategory(_ context.Context, _ int64) error {
	m.record("delete")
	return m.writeErr
}

// --- Mock ImageCompressor ---

type mockCompressor struct {
	err   error
	calls int
}

func (m *mockCompressor) Compress(upload model.ImageUpload) (model.ImageUpload, error) {
	m.calls++
	if m.err != nil {
		return model.ImageUpload{}, m.err
	}
	upload.Data = []byte("compressed")
	return upload, nil
}
