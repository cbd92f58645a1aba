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
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/labinventory/inventory/client/useradm"
)

const headerAuthorization = "Authorization"

func extractTokenFromRequest(req *http.Request) string {
	auth := strings.Split(req.Header.Get(headerAuthorization), " ")
	if len(auth) == 2 && auth[0] == "Bearer" {
		return auth[1]
	}
	return ""
}

// AdminMiddleware lets through only user identities. With a useradm
// client the token is also verified against useradm.
func AdminMiddleware(verifier useradm.ClientInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		idata := identity.FromContext(ctx)
		if idata == nil || !idata.IsUser {
			renderError(c, http.StatusUnauthorized, ErrMissingUserAuthentication)
			return
		}
		if verifier == nil {
			return
		}
		err := verifier.Verify(ctx,
			extractTokenFromRequest(c.Request),
			c.Request.Method,
			c.Request.URL.Path,
		)
		if err != nil {
			status := useradm.GetHTTPStatusCodeFromError(err)
			if status >= http.StatusInternalServerError {
				log.FromContext(ctx).Error(errors.Wrap(err, "failed to verify token"))
			}
			renderError(c, status, err)
			return
		}
	}
}
