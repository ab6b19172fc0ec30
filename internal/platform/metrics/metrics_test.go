package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCacheLookups_Increment(t *testing.T) {
	before := testutil.ToFloat64(CacheLookups.WithLabelValues("hit"))
	CacheLookups.WithLabelValues("hit").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CacheLookups.WithLabelValues("hit")))
}

func TestUpstreamRequests_LabelsAreIndependent(t *testing.T) {
	ok := testutil.ToFloat64(UpstreamRequests.WithLabelValues("GLOBAL_QUOTE", "ok"))
	UpstreamRequests.WithLabelValues("GLOBAL_QUOTE", "http_error").Inc()
	assert.Equal(t, ok, testutil.ToFloat64(UpstreamRequests.WithLabelValues("GLOBAL_QUOTE", "ok")))
}
