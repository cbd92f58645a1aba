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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/labinventory/inventory/app"
	app_mocks "github.com/labinventory/inventory/app/mocks"
	"github.com/labinventory/inventory/model"
)

func TestCreateGroup(t *testing.T) {
	threshold := int64(50)

	testCases := []struct {
		Name string
		Body interface{}

		CallApp  bool
		AppError error

		HTTPStatus int
		Reason     string
	}{
		{
			Name: "ok",
			Body: map[string]interface{}{
				"code":        "LAB1",
				"description": "first floor",
				"settings": map[string]interface{}{
					"minimumDiskSpaceInGigaForAlert": threshold,
				},
			},

			CallApp: true,

			HTTPStatus: http.StatusCreated,
		},
		{
			Name: "ko, missing code",
			Body: map[string]interface{}{"description": "first floor"},

			HTTPStatus: http.StatusBadRequest,
			Reason:     ReasonValidationFailed,
		},
		{
			Name: "ko, negative threshold",
			Body: map[string]interface{}{
				"code": "LAB1",
				"settings": map[string]interface{}{
					"minimumDiskSpaceInGigaForAlert": -1,
				},
			},

			HTTPStatus: http.StatusBadRequest,
			Reason:     ReasonValidationFailed,
		},
		{
			Name: "ko, malformed body",
			Body: "[",

			HTTPStatus: http.StatusBadRequest,
			Reason:     ReasonValidationFailed,
		},
		{
			Name: "ko, duplicate code",
			Body: map[string]interface{}{"code": "LAB1"},

			CallApp:  true,
			AppError: app.ErrGroupExists,

			HTTPStatus: http.StatusConflict,
			Reason:     ReasonConflict,
		},
		{
			Name: "ko, app error",
			Body: map[string]interface{}{"code": "LAB1"},

			CallApp:  true,
			AppError: errors.New("connection reset"),

			HTTPStatus: http.StatusInternalServerError,
			Reason:     ReasonInternalFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			inventoryApp := app_mocks.NewApp(t)
			if tc.CallApp {
				inventoryApp.On("CreateGroup", contextMatcher,
					mock.MatchedBy(func(g *model.Group) bool {
						return g.Code == "LAB1"
					})).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.Group).ID = 3
					}).
					Return(tc.AppError)
			}

			router, _ := NewRouter(inventoryApp)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, newManagementRequest(
				http.MethodPost, APIURLManagementGroups, tc.Body))

			assert.Equal(t, tc.HTTPStatus, w.Code)
			if tc.HTTPStatus == http.StatusCreated {
				var group model.Group
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))
				assert.Equal(t, int64(3), group.ID)
				assert.Equal(t, "first floor", group.Description)
				if assert.NotNil(t, group.Settings) {
					assert.Equal(t, &threshold, group.Settings.MinimumDiskSpaceInGigaForAlert)
				}
				return
			}
			var body ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.Reason, body.Reason)
			if tc.HTTPStatus == http.StatusInternalServerError {
				assert.Equal(t, "internal error", body.Err)
			}
		})
	}
}

func TestGroupOperations(t *testing.T) {
	testCases := []struct {
		Name   string
		Method string
		URL    string
		Body   interface{}

		Setup func(a *app_mocks.App)

		HTTPStatus int
		HTTPBody   string
	}{
		{
			Name:   "list",
			Method: http.MethodGet,
			URL:    APIURLManagementGroups,
			Setup: func(a *app_mocks.App) {
				a.On("ListGroups", contextMatcher).Return(nil, nil)
			},
			HTTPStatus: http.StatusOK,
			HTTPBody:   `[]`,
		},
		{
			Name:   "get",
			Method: http.MethodGet,
			URL:    urlWithID(APIURLManagementGroup, "3"),
			Setup: func(a *app_mocks.App) {
				a.On("GetGroup", contextMatcher, int64(3)).
					Return(&model.Group{
						ID:   3,
						Code: "LAB1",
						Devices: []model.Device{{
							ID:     1,
							MAC:    "aa:bb",
							Status: model.DeviceStatusVerified,
						}},
					}, nil)
			},
			HTTPStatus: http.StatusOK,
		},
		{
			Name:   "get, not found",
			Method: http.MethodGet,
			URL:    urlWithID(APIURLManagementGroup, "3"),
			Setup: func(a *app_mocks.App) {
				a.On("GetGroup", contextMatcher, int64(3)).
					Return(nil, app.ErrGroupNotFound)
			},
			HTTPStatus: http.StatusNotFound,
		},
		{
			Name:   "update",
			Method: http.MethodPut,
			URL:    urlWithID(APIURLManagementGroup, "3"),
			Body:   map[string]interface{}{"code": "LAB2"},
			Setup: func(a *app_mocks.App) {
				a.On("UpdateGroup", contextMatcher,
					mock.MatchedBy(func(g *model.Group) bool {
						return g.ID == 3 && g.Code == "LAB2"
					})).Return(nil)
			},
			HTTPStatus: http.StatusNoContent,
		},
		{
			Name:   "update, code taken",
			Method: http.MethodPut,
			URL:    urlWithID(APIURLManagementGroup, "3"),
			Body:   map[string]interface{}{"code": "LAB2"},
			Setup: func(a *app_mocks.App) {
				a.On("UpdateGroup", contextMatcher, mock.AnythingOfType("*model.Group")).
					Return(app.ErrGroupExists)
			},
			HTTPStatus: http.StatusConflict,
		},
		{
			Name:       "update, invalid",
			Method:     http.MethodPut,
			URL:        urlWithID(APIURLManagementGroup, "3"),
			Body:       map[string]interface{}{"code": ""},
			HTTPStatus: http.StatusBadRequest,
		},
		{
			Name:   "delete",
			Method: http.MethodDelete,
			URL:    urlWithID(APIURLManagementGroup, "3"),
			Setup: func(a *app_mocks.App) {
				a.On("DeleteGroup", contextMatcher, int64(3)).Return(nil)
			},
			HTTPStatus: http.StatusNoContent,
		},
		{
			Name:       "delete, bad id",
			Method:     http.MethodDelete,
			URL:        urlWithID(APIURLManagementGroup, "0"),
			HTTPStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			inventoryApp := app_mocks.NewApp(t)
			if tc.Setup != nil {
				tc.Setup(inventoryApp)
			}

			router, _ := NewRouter(inventoryApp)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, newManagementRequest(tc.Method, tc.URL, tc.Body))

			assert.Equal(t, tc.HTTPStatus, w.Code)
			if tc.HTTPBody != "" {
				assert.JSONEq(t, tc.HTTPBody, w.Body.String())
			}
		})
	}
}
