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
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/model"
)

const (
	HealthCheckURI = "/api/v1/health"
	SendEmailURI   = "/api/v1/workflow/send_email"
)

const (
	defaultTimeout      = time.Duration(5) * time.Second
	defaultRetryMax     = 3
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
)

// Client is the workflows client
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	CheckHealth(ctx context.Context) error
	Notify(ctx context.Context, n *model.Notification) error
}

type ClientOptions struct {
	Client *http.Client
	// RetryMax is the number of retries on connection errors and 5xx
	// responses.
	RetryMax     *int
	RetryWaitMin time.Duration
}

// NewClient returns a new workflows client
func NewClient(url string, opts ...ClientOptions) Client {
	// Initialize default options
	var clientOpts = ClientOptions{
		Client:       &http.Client{},
		RetryWaitMin: defaultRetryWaitMin,
	}
	retryMax := defaultRetryMax
	// Merge options
	for _, opt := range opts {
		if opt.Client != nil {
			clientOpts.Client = opt.Client
		}
		if opt.RetryMax != nil {
			retryMax = *opt.RetryMax
		}
		if opt.RetryWaitMin > 0 {
			clientOpts.RetryWaitMin = opt.RetryWaitMin
		}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = clientOpts.Client
	rc.Logger = nil
	rc.RetryMax = retryMax
	rc.RetryWaitMin = clientOpts.RetryWaitMin
	rc.RetryWaitMax = defaultRetryWaitMax
	// hand the last response back instead of a generic error
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &client{
		url:    strings.TrimSuffix(url, "/"),
		client: rc,
	}
}

type client struct {
	url    string
	client *retryablehttp.Client
}

func (c *client) CheckHealth(ctx context.Context) error {
	var (
		apiErr rest.Error
	)

	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	req, _ := retryablehttp.NewRequestWithContext(
		ctx, "GET", c.url+HealthCheckURI, nil,
	)

	rsp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode >= http.StatusOK && rsp.StatusCode < 300 {
		return nil
	}
	decoder := json.NewDecoder(rsp.Body)
	err = decoder.Decode(&apiErr)
	if err != nil {
		return errors.Errorf("health check HTTP error: %s", rsp.Status)
	}
	return &apiErr
}

// Notify starts the email workflow for the notification
func (c *client) Notify(ctx context.Context, n *model.Notification) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	wflow := EmailWorkflow{
		RequestID: requestid.FromContext(ctx),
		To:        n.Recipients,
		Subject:   n.Subject,
		Body:      n.Body,
		Kind:      string(n.Kind),
		DeviceID:  n.DeviceID,
	}
	if err := wflow.Validate(); err != nil {
		return errors.Wrap(err, "workflows: invalid email")
	}
	payload, _ := json.Marshal(wflow)
	req, err := retryablehttp.NewRequestWithContext(ctx,
		"POST",
		c.url+SendEmailURI,
		bytes.NewReader(payload),
	)
	if err != nil {
		return errors.Wrap(err, "workflows: error preparing HTTP request")
	}
	req.Header.Set("Content-Type", "application/json")

	rsp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "workflows: failed to submit email")
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 300 {
		return nil
	}

	if rsp.StatusCode == http.StatusNotFound {
		return errors.New(`workflows: workflow "send_email" not defined`)
	}

	return errors.Errorf(
		"workflows: unexpected HTTP status from workflows service: %s",
		rsp.Status,
	)
}
