package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownCodes(t *testing.T) {
	knownCodes := []string{
		CodeLinkedInRateLimit,
		CodeNotionAPIError,
		CodeOpenAIQuotaExceeded,
		CodeIndeedScrapingBlocked,
		CodeDatabaseConnectionLost,
		CodeAnalysisTimeout,
	}

	for _, code := range knownCodes {
		t.Run(code, func(t *testing.T) {
			entry := Resolve(code)

			assert.Equal(t, code, entry.Code)
			assert.NotEmpty(t, entry.UserMessage)
			assert.NotEmpty(t, entry.RecoveryAction)
			assert.NotEmpty(t, entry.BusinessImpact)

			// User messages are localized zh-TW.
			hasCJK := false
			for _, r := range entry.UserMessage {
				if r >= 0x4e00 && r <= 0x9fff {
					hasCJK = true
					break
				}
			}
			assert.True(t, hasCJK, "user message should contain zh-TW text")
		})
	}
}

func TestResolve_LinkedInRateLimit(t *testing.T) {
	entry := Resolve(CodeLinkedInRateLimit)

	assert.Equal(t, "LinkedIn搜索暫時受限，已自動切換到Indeed獲取更多職缺", entry.UserMessage)
	assert.Equal(t, "switch_to_indeed_scraper", entry.RecoveryAction)
	assert.Equal(t, ImpactMaintainUserExperience, entry.BusinessImpact)
	assert.True(t, entry.Recoverable())
}

func TestResolve_UnknownCodeFallsBack(t *testing.T) {
	entry := Resolve("something_never_seen")

	assert.Equal(t, CodeInternalError, entry.Code)
	assert.Equal(t, http.StatusInternalServerError, entry.HTTPStatus)
	assert.Equal(t, "standard_error_flow", entry.RecoveryAction)
	assert.Equal(t, ImpactUnknown, entry.BusinessImpact)
	assert.False(t, entry.Recoverable())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"linkedin", errors.New("LinkedIn responded with 429"), CodeLinkedInRateLimit},
		{"notion", errors.New("notion sync failed"), CodeNotionAPIError},
		{"quota", errors.New("insufficient quota for request"), CodeOpenAIQuotaExceeded},
		{"indeed", errors.New("indeed.com returned captcha page"), CodeIndeedScrapingBlocked},
		{"database", errors.New("database is unreachable"), CodeDatabaseConnectionLost},
		{"connection refused", errors.New("dial tcp: connection refused"), CodeDatabaseConnectionLost},
		{"timeout", errors.New("context deadline exceeded"), CodeAnalysisTimeout},
		{"unclassified", errors.New("some novel failure"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestCounts(t *testing.T) {
	ResetCounts()

	Resolve(CodeLinkedInRateLimit)
	Resolve(CodeLinkedInRateLimit)
	Resolve(CodeNotionAPIError)
	Resolve("mystery_code")

	counts := Counts()

	assert.Equal(t, int64(2), counts[CodeLinkedInRateLimit])
	assert.Equal(t, int64(1), counts[CodeNotionAPIError])
	// Unknown codes are counted under the fallback code.
	assert.Equal(t, int64(1), counts[CodeInternalError])

	// Snapshot is a copy.
	counts[CodeLinkedInRateLimit] = 99
	fresh := Counts()
	require.Equal(t, int64(2), fresh[CodeLinkedInRateLimit])
}
