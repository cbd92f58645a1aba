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
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/model"
)

// Machine readable error reasons
const (
	ReasonValidationFailed     = "validation-failed"
	ReasonRegistrationDisabled = "registration-disabled"
	ReasonIdentityConflict     = "identity-conflict"
	ReasonDuplicateHardware    = "duplicate-hardware"
	ReasonNotFound             = "not-found"
	ReasonConflict             = "conflict"
	ReasonUnauthorized         = "unauthorized"
	ReasonInternalFailure      = "internal-failure"
)

// HTTP errors
var (
	ErrMissingUserAuthentication = errors.New(
		"missing or non-user identity in the authorization headers",
	)

	errNotFound = errors.New("resource not found")
	errInternal = errors.New("internal error")
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	rest.Error
	Reason string `json:"reason"`
}

type validationError struct {
	error
}

func (err validationError) Cause() error {
	return err.error
}

func (err validationError) Unwrap() error {
	return err.error
}

// errBadRequest marks err as a client error
func errBadRequest(err error) error {
	return validationError{err}
}

func errorReason(err error) (int, string) {
	var (
		valErrs validation.Errors
		valErr  validationError
	)
	switch {
	case errors.As(err, &valErr),
		errors.As(err, &valErrs),
		errors.Is(err, model.ErrInvalidReport):
		return http.StatusBadRequest, ReasonValidationFailed
	case errors.Is(err, app.ErrRegistrationDisabled):
		return http.StatusForbidden, ReasonRegistrationDisabled
	case errors.Is(err, app.ErrIdentityMismatch):
		return http.StatusForbidden, ReasonIdentityConflict
	case errors.Is(err, app.ErrDuplicateHardware):
		return http.StatusForbidden, ReasonDuplicateHardware
	case errors.Is(err, app.ErrDeviceNotFound),
		errors.Is(err, app.ErrGroupNotFound),
		errors.Is(err, errNotFound):
		return http.StatusNotFound, ReasonNotFound
	case errors.Is(err, app.ErrGroupExists):
		return http.StatusConflict, ReasonConflict
	}
	return http.StatusInternalServerError, ReasonInternalFailure
}

func reasonForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ReasonValidationFailed
	case http.StatusUnauthorized, http.StatusForbidden:
		return ReasonUnauthorized
	case http.StatusNotFound:
		return ReasonNotFound
	case http.StatusConflict:
		return ReasonConflict
	}
	return ReasonInternalFailure
}

// renderError writes err with the given status code
func renderError(c *gin.Context, status int, err error) {
	ctx := c.Request.Context()
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: rest.Error{
			Err:       err.Error(),
			RequestID: requestid.FromContext(ctx),
		},
		Reason: reasonForStatus(status),
	})
}

// renderAppError maps err onto the HTTP status and reason of the error
// taxonomy. Internal failures are logged and rendered without details.
func renderAppError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status, reason := errorReason(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.FromContext(ctx).Error(err)
		msg = errInternal.Error()
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: rest.Error{
			Err:       msg,
			RequestID: requestid.FromContext(ctx),
		},
		Reason: reason,
	})
}
