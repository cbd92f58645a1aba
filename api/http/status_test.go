// Copyright 2024 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	app_mocks "github.com/labinventory/inventory/app/mocks"
)

var contextMatcher = mock.MatchedBy(func(_ context.Context) bool {
	return true
})

func TestAlive(t *testing.T) {
	inventoryApp := &app_mocks.App{}

	router, _ := NewRouter(inventoryApp)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", APIURLInternalAlive, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	inventoryApp.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	testCases := []struct {
		Name           string
		HealthCheckErr error

		HTTPStatus int
		HTTPBody   map[string]interface{}
	}{
		{
			Name:       "ok",
			HTTPStatus: http.StatusNoContent,
		},
		{
			Name:           "ko",
			HealthCheckErr: errors.New("error"),
			HTTPStatus:     http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			inventoryApp := &app_mocks.App{}
			inventoryApp.On("HealthCheck", contextMatcher).
				Return(tc.HealthCheckErr)

			router, _ := NewRouter(inventoryApp)
			req, err := http.NewRequest("GET", APIURLInternalHealth, nil)
			if !assert.NoError(t, err) {
				t.FailNow()
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)
			if tc.HTTPStatus == http.StatusNoContent {
				assert.Nil(t, w.Body.Bytes())
			}

			inventoryApp.AssertExpectations(t)
		})
	}
}

func TestMetrics(t *testing.T) {
	router, _ := NewRouter(&app_mocks.App{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", APIURLMetrics, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCORS(t *testing.T) {
	testCases := []struct {
		Name    string
		Origins []string
		Origin  string

		AllowOrigin string
	}{
		{
			Name:        "allow all",
			Origin:      "https://dashboard.example.com",
			AllowOrigin: "*",
		},
		{
			Name:        "allowed origin",
			Origins:     []string{"https://dashboard.example.com"},
			Origin:      "https://dashboard.example.com",
			AllowOrigin: "https://dashboard.example.com",
		},
		{
			Name:    "origin mismatch",
			Origins: []string{"https://dashboard.example.com"},
			Origin:  "https://evil.example.com",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			router, _ := NewRouter(&app_mocks.App{}, Config{CORSOrigins: tc.Origins})

			req, _ := http.NewRequest(http.MethodOptions, APIURLManagementDevices, nil)
			req.Header.Set("Origin", tc.Origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			allowed := w.Header().Get("Access-Control-Allow-Origin")
			if tc.AllowOrigin == "" {
				assert.Equal(t, http.StatusForbidden, w.Code)
				assert.Empty(t, allowed)
				return
			}
			assert.Equal(t, http.StatusNoContent, w.Code)
			if tc.AllowOrigin == "*" {
				assert.Contains(t, []string{"*", tc.Origin}, allowed)
			} else {
				assert.Equal(t, tc.AllowOrigin, allowed)
			}
		})
	}
}
