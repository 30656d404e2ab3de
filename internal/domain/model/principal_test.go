package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

func TestPrincipal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.Principal
	}{
		{name: "string id", in: `{"id":"7","username":"admin"}`, want: model.Principal{ID: "7", Username: "admin"}},
		{name: "numeric id", in: `{"id":7,"username":"admin"}`, want: model.Principal{ID: "7", Username: "admin"}},
		{name: "missing id", in: `{"username":"admin"}`, want: model.Principal{Username: "admin"}},
		{name: "null id", in: `{"id":null}`, want: model.Principal{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p model.Principal
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPrincipal_UnmarshalJSON_InvalidID(t *testing.T) {
	var p model.Principal
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &p))
}

func TestPrincipal_MarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(model.Principal{ID: "1", Username: "admin"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","username":"admin"}`, string(data))
}

func TestPrincipal_DisplayName(t *testing.T) {
	assert.Equal(t, "admin", model.Principal{ID: "1", Username: "admin"}.DisplayName())
	assert.Equal(t, "1", model.Principal{ID: "1"}.DisplayName())
}
