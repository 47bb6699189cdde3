package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.PageView("home", "en")
	m.PageView("home", "en")
	m.PageView("about", "ar")
	m.NotFound()
	m.Toggle("theme", "dark")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pageViews.WithLabelValues("home", "en")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pageViews.WithLabelValues("about", "ar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notFound))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toggles.WithLabelValues("theme", "dark")))
}

func TestObserveRequestLabelsUnmatched(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/about", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/about", "200")))
}

func TestObserveRequestFoldsUnknownMethods(t *testing.T) {
	m := New()
	m.ObserveRequest("PROPFIND", "", http.StatusNotFound, time.Millisecond)
	m.ObserveRequest("X-RANDOM-1", "", http.StatusNotFound, time.Millisecond)
	m.ObserveRequest(http.MethodHead, "/about", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("other", "unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("HEAD", "/about", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requests))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.NotFound()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.notFound))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.PageView("services", "ar")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `faculty_page_views_total{lang="ar",page="services"} 1`)
}
