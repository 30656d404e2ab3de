package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driven/api"
	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driven/memory"
	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

var testPrincipal = model.Principal{ID: "1", Username: "admin"}

func mustSession(t *testing.T, p model.Principal, token string) model.Session {
	t.Helper()
	s, err := model.NewSession(p, token)
	require.NoError(t, err)
	return s
}

func TestSessionService_NotReadyBeforeInitialize(t *testing.T) {
	svc := application.NewSessionService(&mockCredentialStore{}, &mockAuthAPI{}, &mockTokenAuthorizer{}, discardLogger())

	state := svc.State()
	assert.False(t, state.Ready)
	assert.False(t, state.Authenticated)
}

func TestSessionService_InitializeRestoresSession(t *testing.T) {
	store := &mockCredentialStore{session: mustSession(t, testPrincipal, "abc")}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, &mockAuthAPI{}, tokens, discardLogger())

	svc.Initialize(context.Background())

	state := svc.State()
	assert.True(t, state.Ready)
	assert.True(t, state.Authenticated)
	assert.Equal(t, testPrincipal, state.Principal)
	assert.Equal(t, "abc", tokens.current())
}

func TestSessionService_InitializeEmptyStore(t *testing.T) {
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(&mockCredentialStore{}, &mockAuthAPI{}, tokens, discardLogger())

	svc.Initialize(context.Background())

	assert.True(t, svc.State().Ready)
	assert.False(t, svc.IsAuthenticated())
	assert.Zero(t, tokens.sets, "no token installed for an empty session")
}

func TestSessionService_InitializeRunsOnce(t *testing.T) {
	store := &mockCredentialStore{}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, &mockAuthAPI{}, tokens, discardLogger())
	svc.Initialize(context.Background())

	store.session = mustSession(t, testPrincipal, "late")
	svc.Initialize(context.Background())

	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, tokens.current())
}

func TestSessionService_LoginSuccess(t *testing.T) {
	store := &mockCredentialStore{}
	auth := &mockAuthAPI{principal: testPrincipal, token: "abc"}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, auth, tokens, discardLogger())
	svc.Initialize(context.Background())

	err := svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "right"})

	require.NoError(t, err)
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "abc", tokens.current())
	assert.True(t, store.Load(context.Background()).Equal(mustSession(t, testPrincipal, "abc")))
	assert.Empty(t, svc.LastError())
}

func TestSessionService_LoginBackendFailureLeavesSessionUntouched(t *testing.T) {
	existing := mustSession(t, model.Principal{ID: "9", Username: "old"}, "old-token")
	store := &mockCredentialStore{session: existing}
	auth := &mockAuthAPI{err: &model.APIError{Message: "invalid credentials"}}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, auth, tokens, discardLogger())
	svc.Initialize(context.Background())

	err := svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "wrong"})

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, "invalid credentials", svc.LastError())
	assert.True(t, svc.Current().Equal(existing))
	assert.Equal(t, "old-token", tokens.current())
	assert.Zero(t, store.saves)
}

func TestSessionService_LoginPlainErrorMessage(t *testing.T) {
	svc := application.NewSessionService(&mockCredentialStore{}, &mockAuthAPI{err: errors.New("dial tcp: refused")},
		&mockTokenAuthorizer{}, discardLogger())
	svc.Initialize(context.Background())

	err := svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "pw"})

	require.Error(t, err)
	assert.Equal(t, "dial tcp: refused", svc.LastError())
}

func TestSessionService_LoginBlankCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds model.Credentials
	}{
		{name: "blank username", creds: model.Credentials{Username: "  ", Password: "pw"}},
		{name: "blank password", creds: model.Credentials{Username: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthAPI{principal: testPrincipal, token: "abc"}
			svc := application.NewSessionService(&mockCredentialStore{}, auth, &mockTokenAuthorizer{}, discardLogger())
			svc.Initialize(context.Background())

			err := svc.Login(context.Background(), tt.creds)

			require.Error(t, err)
			assert.Equal(t, application.MissingCredentialsMessage, svc.LastError())
			assert.Zero(t, auth.calls, "no network call for blank credentials")
		})
	}
}

func TestSessionService_LoginPersistFailureChangesNothing(t *testing.T) {
	store := &mockCredentialStore{saveErr: errors.New("disk full")}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, &mockAuthAPI{principal: testPrincipal, token: "abc"}, tokens, discardLogger())
	svc.Initialize(context.Background())

	err := svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "right"})

	require.Error(t, err)
	assert.Equal(t, application.PersistFailedMessage, svc.LastError())
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, tokens.current())
}

func TestSessionService_LoginIncompleteResponse(t *testing.T) {
	store := &mockCredentialStore{}
	svc := application.NewSessionService(store, &mockAuthAPI{principal: testPrincipal}, &mockTokenAuthorizer{}, discardLogger())
	svc.Initialize(context.Background())

	err := svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "right"})

	require.Error(t, err)
	assert.False(t, svc.IsAuthenticated())
	assert.Zero(t, store.saves)
}

func TestSessionService_Logout(t *testing.T) {
	store := &mockCredentialStore{session: mustSession(t, testPrincipal, "abc")}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, &mockAuthAPI{}, tokens, discardLogger())
	svc.Initialize(context.Background())

	svc.Logout(context.Background())

	assert.False(t, svc.IsAuthenticated())
	assert.True(t, svc.Current().IsEmpty())
	assert.True(t, store.Load(context.Background()).IsEmpty())
	assert.Empty(t, tokens.current())
	assert.Equal(t, application.GuardRedirect, application.Guard(svc.State()))
}

func TestSessionService_LogoutStoreErrorStillClearsMemory(t *testing.T) {
	store := &mockCredentialStore{session: mustSession(t, testPrincipal, "abc"), clearErr: errors.New("locked")}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, &mockAuthAPI{}, tokens, discardLogger())
	svc.Initialize(context.Background())

	svc.Logout(context.Background())

	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, tokens.current())
}

func TestSessionService_PrincipalPresentIffToken(t *testing.T) {
	store := &mockCredentialStore{}
	auth := &mockAuthAPI{principal: testPrincipal, token: "abc"}
	svc := application.NewSessionService(store, auth, &mockTokenAuthorizer{}, discardLogger())
	svc.Initialize(context.Background())

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines * 3)

	for i := range goroutines {
		go func() {
			defer wg.Done()
			_ = svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "right"})
		}()
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				svc.Logout(context.Background())
			}
		}()
		go func() {
			defer wg.Done()
			s := svc.Current()
			_, hasPrincipal := s.Principal()
			assert.Equal(t, hasPrincipal, s.Token() != "")
			state := svc.State()
			assert.Equal(t, state.Authenticated, state.Principal.ID != "")
		}()
	}

	wg.Wait()

	s := store.Load(context.Background())
	_, hasPrincipal := s.Principal()
	assert.Equal(t, hasPrincipal, s.Token() != "")
}

// --- End-to-end flows against an httptest backend ---

type loginBackend struct {
	mu       sync.Mutex
	lastAuth string
}

func (b *loginBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body model.Credentials
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "right" {
			_, _ = w.Write([]byte(`{"success":false,"error":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"admin":{"id":"1","username":"admin"},"token":"abc"}}`))
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.lastAuth = r.Header.Get("Authorization")
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})
	return mux
}

func newEndToEnd(t *testing.T) (*application.SessionService, *memory.CredentialStore, *api.Client, *loginBackend) {
	t.Helper()

	backend := &loginBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client, err := api.NewClientWithHTTPClient(server.Client(), server.URL+"/api", discardLogger())
	require.NoError(t, err)

	store := memory.NewCredentialStore()
	svc := application.NewSessionService(store, client, client, discardLogger())
	svc.Initialize(context.Background())
	return svc, store, client, backend
}

func TestEndToEnd_WrongPassword(t *testing.T) {
	svc, store, _, _ := newEndToEnd(t)

	err := svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "wrong"})

	require.Error(t, err)
	assert.Equal(t, "invalid credentials", svc.LastError())
	assert.True(t, svc.Current().IsEmpty())
	assert.True(t, store.Load(context.Background()).IsEmpty(), "no persisted record is written")
}

func TestEndToEnd_SuccessfulLoginAuthorizesLaterCalls(t *testing.T) {
	svc, store, client, backend := newEndToEnd(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, model.Credentials{Username: "admin", Password: "right"}))

	loaded := store.Load(ctx)
	p, ok := loaded.Principal()
	require.True(t, ok)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "abc", loaded.Token())

	_, err := client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", backend.lastAuth)
}

func TestEndToEnd_LogoutThenGuardRedirects(t *testing.T) {
	svc, store, client, backend := newEndToEnd(t)
	ctx := context.Background()
	require.NoError(t, svc.Login(ctx, model.Credentials{Username: "admin", Password: "right"}))

	svc.Logout(ctx)

	assert.True(t, store.Load(ctx).IsEmpty())
	assert.Equal(t, application.GuardRedirect, application.Guard(svc.State()))

	_, err := client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, backend.lastAuth)
}

func TestSessionService_LoginDuringRestoreIsKept(t *testing.T) {
	store := &blockingCredentialStore{
		loading: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	tokens := &mockTokenAuthorizer{}
	auth := &mockAuthAPI{principal: testPrincipal, token: "abc"}
	svc := application.NewSessionService(store, auth, tokens, discardLogger())

	initDone := make(chan struct{})
	go func() {
		svc.Initialize(context.Background())
		close(initDone)
	}()
	<-store.loading

	loginErr := make(chan error, 1)
	go func() {
		loginErr <- svc.Login(context.Background(), model.Credentials{Username: "admin", Password: "right"})
	}()

	close(store.release)
	<-initDone
	require.NoError(t, <-loginErr)

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "abc", svc.Current().Token())
	assert.Equal(t, "abc", tokens.current())
	assert.True(t, store.mockCredentialStore.Load(context.Background()).Equal(mustSession(t, testPrincipal, "abc")))
}

func TestSessionService_LogoutBeforeInitializeStaysLoggedOut(t *testing.T) {
	store := &mockCredentialStore{session: mustSession(t, testPrincipal, "abc")}
	tokens := &mockTokenAuthorizer{}
	svc := application.NewSessionService(store, &mockAuthAPI{}, tokens, discardLogger())

	svc.Logout(context.Background())
	svc.Initialize(context.Background())

	assert.True(t, svc.State().Ready)
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, tokens.current())
	assert.True(t, store.Load(context.Background()).IsEmpty())
}
