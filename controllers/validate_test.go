package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput(t *testing.T) {
	fields := []field{{"name", typeString}, {"menuId", typeNumber}, {"price", typeNumber}}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name: "valid",
			body: `{"name": "Draft", "menuId": 1, "price": 0}`,
		},
		{
			name:       "all missing",
			body:       `{}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "All of [name, menuId, price] must be provided",
		},
		{
			name:       "null and empty string count as missing",
			body:       `{"name": "", "menuId": null, "price": 1}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "All of [name, menuId] must be provided",
		},
		{
			name:       "missing wins over type errors",
			body:       `{"name": 5, "price": 1}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "All of [menuId] must be provided",
		},
		{
			name:       "type errors listed together",
			body:       `{"name": 5, "menuId": "1", "price": 2.5}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "The following type errors were found: [name must be of type string, menuId must be of type number]",
		},
		{
			name:       "not json",
			body:       `name=Draft`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "request body must be a JSON object",
		},
		{
			name:       "array",
			body:       `[]`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "request body must be a JSON object",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput([]byte(tt.body), fields)
			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.wantStatus, inputErr.Status)
			assert.Equal(t, tt.wantMsg, inputErr.Message)
		})
	}
}

func TestValidateTypesIgnoresAbsentFields(t *testing.T) {
	fields := []field{{"displayName", typeString}, {"order", typeNumber}}

	assert.NoError(t, validateTypes([]byte(`{}`), fields))
	assert.NoError(t, validateTypes([]byte(`{"order": null}`), fields))
	assert.NoError(t, validateTypes([]byte(`{"displayName": ""}`), fields))

	err := validateTypes([]byte(`{"order": "first"}`), fields)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, http.StatusBadRequest, inputErr.Status)
	assert.Equal(t, "The following type errors were found: [order must be of type number]", inputErr.Message)
}
