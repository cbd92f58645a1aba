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

package useradm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	testCases := map[string]struct {
		token  string
		method string
		uri    string

		status int
		result error
	}{
		"ok": {
			token:  "token",
			method: "GET",
			uri:    "/",
			status: http.StatusOK,
		},
		"ko, forbidden": {
			token:  "token",
			method: "GET",
			uri:    "/",
			status: http.StatusForbidden,
			result: ErrForbidden,
		},
		"ko, unauthorized": {
			token:  "token",
			method: "POST",
			uri:    "/api/management/v1/inventory/groups",
			status: http.StatusUnauthorized,
			result: ErrUnauthorized,
		},
		"ko, too many requests": {
			token:  "token",
			method: "GET",
			uri:    "/",
			status: http.StatusTooManyRequests,
			result: ErrTooManyRequests,
		},
		"ko, internal error": {
			token:  "token",
			method: "GET",
			uri:    "/",
			status: http.StatusBadGateway,
			result: ErrInternalError,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var received *http.Request
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					received = r
					w.WriteHeader(tc.status)
				}))
			defer srv.Close()

			client := NewClient(srv.URL + "/")
			err := client.Verify(context.Background(), tc.token, tc.method, tc.uri)
			assert.Equal(t, tc.result, err)

			if assert.NotNil(t, received) {
				assert.Equal(t, http.MethodPost, received.Method)
				assert.Equal(t, verifyURI, received.URL.Path)
				assert.Equal(t, "Bearer "+tc.token, received.Header.Get(headerAuthorization))
				assert.Equal(t, tc.uri, received.Header.Get(headerForwardedForURI))
				assert.Equal(t, tc.method, received.Header.Get(headerForwardedForMethod))
			}
		})
	}
}

func TestVerifyRemembersGrantedRequests(t *testing.T) {
	var calls int
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(status)
		}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()
	assert.NoError(t, client.Verify(ctx, "token", "GET", "/groups"))
	assert.NoError(t, client.Verify(ctx, "token", "GET", "/groups"))
	assert.Equal(t, 1, calls)

	status = http.StatusForbidden
	assert.Equal(t, ErrForbidden, client.Verify(ctx, "token", "DELETE", "/groups/1"))
	assert.Equal(t, ErrForbidden, client.Verify(ctx, "token", "DELETE", "/groups/1"))
	assert.Equal(t, 3, calls)
}

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestVerifyRequestFailure(t *testing.T) {
	client := NewClient("http://localhost:1", failingClient{})
	err := client.Verify(context.Background(), "token", "GET", "/")
	assert.Equal(t, ErrInternalError, err)
}

func TestGetHTTPStatusCodeFromError(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, GetHTTPStatusCodeFromError(ErrForbidden))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatusCodeFromError(ErrUnauthorized))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatusCodeFromError(ErrTooManyRequests))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatusCodeFromError(ErrInternalError))
}
