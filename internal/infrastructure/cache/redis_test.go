package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedReport struct {
	Total int    `json:"total"`
	Label string `json:"label"`
}

func newTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New(context.Background(), mr.Addr(), "", 0, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestReportCache_MissDevuelveFalse(t *testing.T) {
	c, _ := newTestCache(t)

	var out cachedReport
	assert.False(t, c.Get(context.Background(), "reports:dashboard", &out))
}

func TestReportCache_SetYGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := cachedReport{Total: 42, Label: "dashboard"}
	c.Set(ctx, "reports:dashboard", in)

	var out cachedReport
	require.True(t, c.Get(ctx, "reports:dashboard", &out))
	assert.Equal(t, in, out)
}

func TestReportCache_RespetaTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "reports:valuation", cachedReport{Total: 1})
	mr.FastForward(10 * time.Minute)

	var out cachedReport
	assert.False(t, c.Get(ctx, "reports:valuation", &out), "tras expirar el TTL es un miss")
}

func TestReportCache_InvalidateBorraLasClavesDeReportes(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for _, key := range reportKeys {
		c.Set(ctx, key, cachedReport{Total: 7})
	}
	c.Invalidate(ctx)

	var out cachedReport
	for _, key := range reportKeys {
		assert.False(t, c.Get(ctx, key, &out), "clave %s debe desaparecer tras invalidar", key)
	}
}

func TestReportCache_ValorCorruptoEsMiss(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("reports:top-items", "esto-no-es-json{"))

	var out cachedReport
	assert.False(t, c.Get(context.Background(), "reports:top-items", &out), "JSON corrupto degrada a miss")
}
