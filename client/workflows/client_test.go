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

package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/labinventory/inventory/model"
)

func noRetry() ClientOptions {
	retries := 0
	return ClientOptions{RetryMax: &retries}
}

// newTestServer creates a new mock server that responds with the responses
// pushed onto the rspChan and pushes any requests received onto reqChan if
// the requests are consumed in the other end.
func newTestServer(
	rspChan <-chan *http.Response,
	reqChan chan<- *http.Request,
) *httptest.Server {
	handler := func(w http.ResponseWriter, r *http.Request) {
		var rsp *http.Response
		select {
		case rsp = <-rspChan:
		default:
			panic("[PROG ERR] I don't know what to respond!")
		}
		if reqChan != nil {
			bodyClone := bytes.NewBuffer(nil)
			_, _ = io.Copy(bodyClone, r.Body)
			req := r.Clone(context.TODO())
			req.Body = io.NopCloser(bodyClone)
			select {
			case reqChan <- req:
				// Only push request if test function is
				// popping from the channel.
			default:
			}
		}
		hdrs := w.Header()
		for k, v := range rsp.Header {
			for _, vv := range v {
				hdrs.Add(k, vv)
			}
		}
		w.WriteHeader(rsp.StatusCode)
		if rsp.Body != nil {
			_, _ = io.Copy(w, rsp.Body)
		}
	}
	return httptest.NewServer(http.HandlerFunc(handler))
}

func TestCheckHealth(t *testing.T) {
	t.Parallel()

	expiredCtx, cancel := context.WithDeadline(
		context.TODO(), time.Now().Add(-1*time.Second))
	defer cancel()
	defaultCtx, cancel := context.WithTimeout(context.TODO(), time.Second*10)
	defer cancel()

	testCases := []struct {
		Name string

		Ctx context.Context

		// Workflows response
		ResponseCode int
		ResponseBody interface{}

		Error error
	}{{
		Name: "ok",

		Ctx:          defaultCtx,
		ResponseCode: http.StatusOK,
	}, {
		Name: "error, expired deadline",

		Ctx:   expiredCtx,
		Error: errors.New(context.DeadlineExceeded.Error()),
	}, {
		Name: "error, workflows unhealthy",

		ResponseCode: http.StatusServiceUnavailable,
		ResponseBody: rest.Error{
			Err:       "internal error",
			RequestID: "test",
		},

		Error: errors.New("internal error"),
	}, {
		Name: "error, bad response",

		Ctx: context.TODO(),

		ResponseCode: http.StatusServiceUnavailable,
		ResponseBody: "foobar",

		Error: errors.New("health check HTTP error: 503 Service Unavailable"),
	}}

	responses := make(chan http.Response, 1)
	serveHTTP := func(w http.ResponseWriter, r *http.Request) {
		rsp := <-responses
		w.WriteHeader(rsp.StatusCode)
		if rsp.Body != nil {
			_, _ = io.Copy(w, rsp.Body)
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(serveHTTP))
	client := NewClient(srv.URL, noRetry())
	defer srv.Close()

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {

			if tc.ResponseCode > 0 {
				rsp := http.Response{
					StatusCode: tc.ResponseCode,
				}
				if tc.ResponseBody != nil {
					b, _ := json.Marshal(tc.ResponseBody)
					rsp.Body = io.NopCloser(bytes.NewReader(b))
				}
				responses <- rsp
			}

			err := client.CheckHealth(tc.Ctx)

			if tc.Error != nil {
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tc.Error.Error())
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotify(t *testing.T) {
	t.Parallel()

	notification := &model.Notification{
		Kind:       model.NotificationLowDiskSpace,
		DeviceID:   12,
		Recipients: []string{"a@example.com", "b@example.com"},
		Subject:    "Inventory - low disk space on pc-1",
		Body:       "Free space: 5.00 GB\n",
	}

	testCases := []struct {
		Name string

		CTX          context.Context
		Notification *model.Notification

		URLNoise string // Sole purpose is to provide a bad URL

		Response *http.Response
		Error    error
	}{{
		Name: "ok",

		CTX:          requestid.WithContext(context.Background(), "testing"),
		Notification: notification,

		Response: &http.Response{
			StatusCode: 201,
		},
	}, {
		Name: "error, bad email",

		CTX: context.Background(),
		Notification: &model.Notification{
			Recipients: []string{"not an email"},
			Subject:    "x",
		},

		Error: errors.New(`^workflows: invalid email: to: \(0: must be a valid email address\.\)\.$`),
	}, {
		Name: "error, no recipients",

		CTX:          context.Background(),
		Notification: &model.Notification{Subject: "x"},

		Error: errors.New(`^workflows: invalid email: to: cannot be blank\.$`),
	}, {
		Name: "error, bad request URL",

		CTX:          context.Background(),
		Notification: notification,
		URLNoise:     "?####$%%%%",
		Error: errors.New(`^workflows: error preparing HTTP request: ` +
			`parse ".+": invalid URL escape "%%%"$`),
	}, {
		Name: "error, context canceled",

		CTX: func() context.Context {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}(),
		Notification: notification,
		Error: errors.Errorf(`workflows: failed to submit email: `+
			`.*%s`, context.Canceled.Error(),
		),
		Response: &http.Response{
			StatusCode: 201,
		},
	}, {
		Name: "error, workflow does not exist",

		CTX:          context.Background(),
		Notification: notification,
		Error:        errors.New(`^workflows: workflow "send_email" not defined$`),
		Response: &http.Response{
			StatusCode: 404,
		},
	}, {
		Name: "error, unexpected response",

		CTX:          context.Background(),
		Notification: notification,
		Error: errors.Errorf(`^workflows: unexpected HTTP status from `+
			`workflows service: %d`, http.StatusInternalServerError),
		Response: &http.Response{
			StatusCode: 500,
		},
	}}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rspChan := make(chan *http.Response, 1)
			reqChan := make(chan *http.Request, 1)
			srv := newTestServer(rspChan, reqChan)
			defer srv.Close()
			opts := noRetry()
			opts.Client = &http.Client{
				Timeout: defaultTimeout,
			}
			c := NewClient(srv.URL+tc.URLNoise, opts)
			if tc.Response != nil {
				select {
				case rspChan <- tc.Response:
				default:
					panic("[PROG ERR] Test case error (race)!")
				}
			}

			err := c.Notify(tc.CTX, tc.Notification)

			if tc.Error != nil {
				if assert.Error(t, err) {
					assert.Regexp(t,
						tc.Error.Error(),
						err.Error(),
					)
				}
			} else {
				assert.NoError(t, err)
				var (
					req   *http.Request
					wflow EmailWorkflow
				)
				select {
				case req = <-reqChan:

				default:
					panic("[PROG ERR] bad test case!")
				}
				assert.Equal(t, SendEmailURI, req.URL.Path)
				if !assert.NotNil(t, req.Body) {
					return
				}
				defer req.Body.Close()
				decoder := json.NewDecoder(req.Body)
				err := decoder.Decode(&wflow)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, EmailWorkflow{
					RequestID: requestid.FromContext(tc.CTX),
					To:        tc.Notification.Recipients,
					Subject:   tc.Notification.Subject,
					Body:      tc.Notification.Body,
					Kind:      string(tc.Notification.Kind),
					DeviceID:  tc.Notification.DeviceID,
				}, wflow)
			}
		})
	}
}

func TestNotifyRetries(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, ClientOptions{RetryWaitMin: time.Millisecond})
	err := c.Notify(context.Background(), &model.Notification{
		Recipients: []string{"a@example.com"},
		Subject:    "x",
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
