package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

func TestNewSession(t *testing.T) {
	tests := []struct {
		name      string
		principal model.Principal
		token     string
		wantErr   bool
	}{
		{name: "complete", principal: model.Principal{ID: "1", Username: "admin"}, token: "abc"},
		{name: "missing token", principal: model.Principal{ID: "1"}, wantErr: true},
		{name: "missing principal id", principal: model.Principal{Username: "admin"}, token: "abc", wantErr: true},
		{name: "both missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := model.NewSession(tt.principal, tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrIncompleteSession)
				assert.True(t, s.IsEmpty())
				return
			}
			require.NoError(t, err)
			p, ok := s.Principal()
			assert.True(t, ok)
			assert.Equal(t, tt.principal, p)
			assert.Equal(t, tt.token, s.Token())
			assert.False(t, s.IsEmpty())
		})
	}
}

func TestSession_ZeroValueIsEmpty(t *testing.T) {
	var s model.Session

	_, ok := s.Principal()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
	assert.True(t, s.IsEmpty())
}

func TestSession_Equal(t *testing.T) {
	a, _ := model.NewSession(model.Principal{ID: "1", Username: "admin"}, "abc")
	b, _ := model.NewSession(model.Principal{ID: "1", Username: "admin"}, "abc")
	c, _ := model.NewSession(model.Principal{ID: "1", Username: "admin"}, "xyz")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(model.Session{}))
	assert.True(t, model.Session{}.Equal(model.Session{}))
}

func TestSession_PrincipalIsCopied(t *testing.T) {
	p := model.Principal{ID: "1", Username: "admin"}
	s, err := model.NewSession(p, "abc")
	require.NoError(t, err)

	p.Username = "changed"

	got, _ := s.Principal()
	assert.Equal(t, "admin", got.Username)
}
