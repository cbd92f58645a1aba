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

package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics of the reconciliation engine
var (
	reportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_reports_total",
		Help: "Total number of inventory reports by outcome",
	}, []string{"outcome"})

	auditLogsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_audit_logs_written_total",
		Help: "Total number of audit log entries written",
	})

	groupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_groups_created_total",
		Help: "Total number of groups created on demand by reports",
	})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_notifications_total",
		Help: "Total number of notifications dispatched by kind and status",
	}, []string{"kind", "status"})
)

// Report outcomes
const (
	outcomeCreated              = "created"
	outcomeUpdated              = "updated"
	outcomeRegistrationDisabled = "registration_disabled"
	outcomeIdentityConflict     = "identity_conflict"
	outcomeDuplicateHardware    = "duplicate_hardware"
	outcomeError                = "error"
)
