package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSuspiciousUserAgent(t *testing.T) {
	cases := []struct {
		ua         string
		suspicious bool
	}{
		{"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/128.0", false},
		{"curl/8.5.0", false},
		{"", false},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", true},
		{"my-crawler/1.0", true},
		{"SPIDER", true},
		{"price-scraper", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.suspicious, isSuspiciousUserAgent(tc.ua), "ua=%q", tc.ua)
	}
}

func TestBlockBots_RejectsScrapers(t *testing.T) {
	limiter := NewRateLimiter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/purchase", nil)
	req.Header.Set("User-Agent", "Googlebot/2.1")

	event := &core.RequestEvent{}
	event.Event = router.Event{Request: req, Response: httptest.NewRecorder()}

	err := limiter.BlockBots()(event)
	require.Error(t, err)

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}
