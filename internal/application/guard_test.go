package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name  string
		state application.SessionState
		want  application.GuardDecision
	}{
		{name: "not ready", state: application.SessionState{}, want: application.GuardLoading},
		{name: "not ready ignores stale auth", state: application.SessionState{Authenticated: true}, want: application.GuardLoading},
		{name: "ready anonymous", state: application.SessionState{Ready: true}, want: application.GuardRedirect},
		{name: "ready authenticated", state: application.SessionState{Ready: true, Authenticated: true}, want: application.GuardAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, application.Guard(tt.state))
		})
	}
}

func TestGuard_NeverRedirectsBeforeInitialize(t *testing.T) {
	store := &mockCredentialStore{session: mustSession(t, model.Principal{ID: "1"}, "abc")}
	svc := application.NewSessionService(store, &mockAuthAPI{}, &mockTokenAuthorizer{}, discardLogger())

	assert.Equal(t, application.GuardLoading, application.Guard(svc.State()))

	svc.Initialize(context.Background())
	assert.Equal(t, application.GuardAllow, application.Guard(svc.State()))

	svc.Logout(context.Background())
	assert.Equal(t, application.GuardRedirect, application.Guard(svc.State()))
}

func TestGuardDecision_String(t *testing.T) {
	assert.Equal(t, "loading", application.GuardLoading.String())
	assert.Equal(t, "redirect", application.GuardRedirect.String())
	assert.Equal(t, "allow", application.GuardAllow.String())
	assert.Equal(t, "unknown", application.GuardDecision(42).String())
}
