// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Goodnessmbakara/nomadlink-contract/api/admin"
	"github.com/Goodnessmbakara/nomadlink-contract/api/staking"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/control"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault"
	"github.com/Goodnessmbakara/nomadlink-contract/metrics"
)

var (
	metricHTTPReqCounter  = metrics.LazyLoadCounterVec("api_request_count", []string{"name", "code", "method"})
	metricHTTPReqDuration = metrics.LazyLoadHistogram("api_duration_ms", metrics.BucketHTTPReqs)
)

// New assembles the HTTP handler over the staking ledger and the admin
// controls. The returned handler serializes all state access internally.
func New(vault *stakevault.Vault, ctrl *control.Control, now func() uint64) http.HandlerFunc {
	if now == nil {
		now = func() uint64 { return uint64(time.Now().Unix()) }
	}

	var mu sync.Mutex
	router := mux.NewRouter()

	staking.New(&mu, vault, now).Mount(router, "/staking")
	admin.New(&mu, ctrl).Mount(router, "/admin")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	handler := handlers.CompressHandler(router)
	handler = metricsMiddleware(router, handler)
	return handler.ServeHTTP
}

// metricsMiddleware records request counts and durations per route name.
func metricsMiddleware(router *mux.Router, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			name    = ""
			match   mux.RouteMatch
			rec     = statusRecorder{ResponseWriter: w, status: http.StatusOK}
			started = time.Now()
		)
		if router.Match(r, &match) && match.Route != nil {
			name = match.Route.GetName()
		}

		next.ServeHTTP(&rec, r)

		metricHTTPReqCounter().AddWithLabel(1, map[string]string{
			"name":   name,
			"code":   strconv.Itoa(rec.status),
			"method": r.Method,
		})
		metricHTTPReqDuration().Observe(time.Since(started).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
