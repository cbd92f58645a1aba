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
	"net/http"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
)

// useradm errors
var (
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInternalError   = errors.New("internal error")
)

const (
	verifyURI                = "/api/internal/v1/useradm/auth/verify"
	headerAuthorization      = "Authorization"
	headerForwardedForURI    = "X-Forwarded-URI"
	headerForwardedForMethod = "X-Forwarded-Method"

	defaultTimeout = 5 * time.Second

	// successful verifications are reused for verifiedTTL
	verifiedTTL      = 10 * time.Second
	verifiedCapacity = 1024
)

var statusErrors = map[int]error{
	http.StatusOK:              nil,
	http.StatusForbidden:       ErrForbidden,
	http.StatusUnauthorized:    ErrUnauthorized,
	http.StatusTooManyRequests: ErrTooManyRequests,
}

// HTTPClient interfacee
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// ClientInterface is the interface of a useradm client
//
//go:generate ../../utils/mockgen.sh
type ClientInterface interface {
	Verify(ctx context.Context, token string, method string, uri string) error
}

// Client provides a useradm client
type Client struct {
	URI        string
	httpClient HTTPClient
	verified   *ttlcache.Cache[string, struct{}]
}

// NewClient returns a new Client
func NewClient(URI string, httpClient ...HTTPClient) *Client {
	c := &Client{
		URI:        strings.TrimSuffix(URI, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		verified: ttlcache.New[string, struct{}](
			ttlcache.WithTTL[string, struct{}](verifiedTTL),
			ttlcache.WithCapacity[string, struct{}](verifiedCapacity),
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		),
	}
	for _, hc := range httpClient {
		if hc != nil {
			c.httpClient = hc
		}
	}
	return c
}

// Verify verifies a user JWT token for the given request. Granted
// requests are remembered for a few seconds.
func (c *Client) Verify(ctx context.Context, token string, method string, uri string) error {
	l := log.FromContext(ctx)

	key := method + " " + uri + " " + token
	if c.verified.Get(key) != nil {
		return nil
	}

	verifyURI := c.URI + verifyURI
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, verifyURI, nil)
	if err != nil {
		l.Error(errors.Wrap(err, "error while creating the request"))
		return ErrInternalError
	}
	req.Header.Add(headerAuthorization, "Bearer "+token)
	req.Header.Add(headerForwardedForURI, uri)
	req.Header.Add(headerForwardedForMethod, method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Error(errors.Wrap(err, "error while making the http request"))
		return ErrInternalError
	}
	defer resp.Body.Close()
	err, ok := statusErrors[resp.StatusCode]
	if !ok {
		return ErrInternalError
	} else if err == nil {
		c.verified.Set(key, struct{}{}, ttlcache.DefaultTTL)
	}
	return err
}

// GetHTTPStatusCodeFromError returns the HTTP status code from an error
func GetHTTPStatusCodeFromError(err error) int {
	var code int
	switch err {
	case ErrForbidden:
		code = http.StatusForbidden
	case ErrUnauthorized:
		code = http.StatusUnauthorized
	case ErrTooManyRequests:
		code = http.StatusTooManyRequests
	default:
		code = http.StatusInternalServerError
	}
	return code
}
