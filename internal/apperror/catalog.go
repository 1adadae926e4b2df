// Package apperror maps known failure categories to user-facing messages,
// recovery actions, and business-impact tags, and keeps per-code counters
// for reporting.
package apperror

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Known error codes.
const (
	CodeLinkedInRateLimit      = "linkedin_rate_limit"
	CodeNotionAPIError         = "notion_api_error"
	CodeOpenAIQuotaExceeded    = "openai_quota_exceeded"
	CodeIndeedScrapingBlocked  = "indeed_scraping_blocked"
	CodeDatabaseConnectionLost = "database_connection_lost"
	CodeAnalysisTimeout        = "ai_analysis_timeout"
	CodeValidationError        = "validation_error"
	CodeJobNotFound            = "job_not_found"
	CodeCompanyNotFound        = "company_not_found"
	CodeAnalysisNotFound       = "analysis_not_found"
	CodeDuplicateJob           = "duplicate_job"
	CodeDuplicateCompany       = "duplicate_company"
	CodeRateLimitExceeded      = "rate_limit_exceeded"
	CodeInternalError          = "internal_error"
)

// Business impact tags.
const (
	ImpactMaintainUserExperience = "maintain_user_experience"
	ImpactUserRetentionRisk      = "user_retention_risk"
	ImpactReducedValueDelivery   = "reduced_value_delivery"
	ImpactServiceDisruption      = "service_disruption"
	ImpactUnknown                = "unknown"
)

// Entry describes how a failure category is surfaced and recovered from.
// User messages are zh-TW, matching the product's locale.
type Entry struct {
	Code           string
	HTTPStatus     int
	UserMessage    string
	RecoveryAction string
	BusinessImpact string
	RetryAfter     time.Duration
}

var catalog = map[string]Entry{
	CodeLinkedInRateLimit: {
		Code:           CodeLinkedInRateLimit,
		HTTPStatus:     http.StatusServiceUnavailable,
		UserMessage:    "LinkedIn搜索暫時受限，已自動切換到Indeed獲取更多職缺",
		RecoveryAction: "switch_to_indeed_scraper",
		BusinessImpact: ImpactMaintainUserExperience,
		RetryAfter:     30 * time.Second,
	},
	CodeNotionAPIError: {
		Code:           CodeNotionAPIError,
		HTTPStatus:     http.StatusServiceUnavailable,
		UserMessage:    "Notion同步暫時無法使用，數據已保存將稍後重試",
		RecoveryAction: "add_to_retry_queue",
		BusinessImpact: ImpactUserRetentionRisk,
		RetryAfter:     5 * time.Minute,
	},
	CodeOpenAIQuotaExceeded: {
		Code:           CodeOpenAIQuotaExceeded,
		HTTPStatus:     http.StatusServiceUnavailable,
		UserMessage:    "AI分析服務暫時繁忙，為您提供基礎匹配結果",
		RecoveryAction: "use_basic_matching_algorithm",
		BusinessImpact: ImpactReducedValueDelivery,
	},
	CodeIndeedScrapingBlocked: {
		Code:           CodeIndeedScrapingBlocked,
		HTTPStatus:     http.StatusServiceUnavailable,
		UserMessage:    "Indeed搜尋頻率過高，請稍後再試",
		RecoveryAction: "pause_and_retry_later",
		BusinessImpact: ImpactServiceDisruption,
		RetryAfter:     10 * time.Minute,
	},
	CodeDatabaseConnectionLost: {
		Code:           CodeDatabaseConnectionLost,
		HTTPStatus:     http.StatusServiceUnavailable,
		UserMessage:    "資料庫連接失敗，請稍後重試",
		RecoveryAction: "reconnect_with_backoff",
		BusinessImpact: ImpactServiceDisruption,
		RetryAfter:     30 * time.Second,
	},
	CodeAnalysisTimeout: {
		Code:           CodeAnalysisTimeout,
		HTTPStatus:     http.StatusServiceUnavailable,
		UserMessage:    "AI分析服務暫時繁忙，為您提供基本分析結果",
		RecoveryAction: "fallback_to_basic_analysis",
		BusinessImpact: ImpactReducedValueDelivery,
	},
	CodeValidationError: {
		Code:           CodeValidationError,
		HTTPStatus:     http.StatusBadRequest,
		UserMessage:    "輸入資料格式不正確，請檢查輸入格式並重試",
		RecoveryAction: "standard_error_flow",
		BusinessImpact: ImpactUnknown,
	},
	CodeJobNotFound: {
		Code:           CodeJobNotFound,
		HTTPStatus:     http.StatusNotFound,
		UserMessage:    "找不到指定的職缺",
		RecoveryAction: "standard_error_flow",
		BusinessImpact: ImpactUnknown,
	},
	CodeCompanyNotFound: {
		Code:           CodeCompanyNotFound,
		HTTPStatus:     http.StatusNotFound,
		UserMessage:    "找不到指定的公司",
		RecoveryAction: "standard_error_flow",
		BusinessImpact: ImpactUnknown,
	},
	CodeAnalysisNotFound: {
		Code:           CodeAnalysisNotFound,
		HTTPStatus:     http.StatusNotFound,
		UserMessage:    "找不到指定的分析結果",
		RecoveryAction: "standard_error_flow",
		BusinessImpact: ImpactUnknown,
	},
	CodeDuplicateJob: {
		Code:           CodeDuplicateJob,
		HTTPStatus:     http.StatusConflict,
		UserMessage:    "此職缺已存在於系統中",
		RecoveryAction: "standard_error_flow",
		BusinessImpact: ImpactUnknown,
	},
	CodeDuplicateCompany: {
		Code:           CodeDuplicateCompany,
		HTTPStatus:     http.StatusConflict,
		UserMessage:    "此公司已存在於系統中",
		RecoveryAction: "standard_error_flow",
		BusinessImpact: ImpactUnknown,
	},
	CodeRateLimitExceeded: {
		Code:           CodeRateLimitExceeded,
		HTTPStatus:     http.StatusTooManyRequests,
		UserMessage:    "請求次數過多，請稍後再試",
		RecoveryAction: "standard_error_flow",
		BusinessImpact: ImpactUnknown,
		RetryAfter:     time.Minute,
	},
}

// fallback is returned for codes outside the catalog. No recovery is
// attempted for unknown categories.
var fallback = Entry{
	Code:           CodeInternalError,
	HTTPStatus:     http.StatusInternalServerError,
	UserMessage:    "系統發生未預期的錯誤，請稍後重試",
	RecoveryAction: "standard_error_flow",
	BusinessImpact: ImpactUnknown,
}

// Resolve looks up the catalog entry for a code, falling back to the
// generic internal-error entry, and increments the code's counter.
func Resolve(code string) Entry {
	entry, ok := catalog[code]
	if !ok {
		entry = fallback
	}
	record(entry.Code)
	return entry
}

// Lookup returns the entry without touching the counters.
func Lookup(code string) (Entry, bool) {
	entry, ok := catalog[code]
	return entry, ok
}

// Recoverable reports whether the entry names a real recovery action.
func (e Entry) Recoverable() bool {
	return e.RecoveryAction != "standard_error_flow"
}

// Classify maps an arbitrary error to a known code by message pattern,
// or "" when no category applies.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "linkedin"):
		return CodeLinkedInRateLimit
	case strings.Contains(msg, "notion"):
		return CodeNotionAPIError
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return CodeOpenAIQuotaExceeded
	case strings.Contains(msg, "indeed"):
		return CodeIndeedScrapingBlocked
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "database"),
		strings.Contains(msg, "broken pipe"):
		return CodeDatabaseConnectionLost
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return CodeAnalysisTimeout
	}

	return ""
}

var (
	countersMu sync.Mutex
	counters   = make(map[string]int64)
)

func record(code string) {
	countersMu.Lock()
	counters[code]++
	countersMu.Unlock()
}

// Counts returns a copy of the per-code counters.
func Counts() map[string]int64 {
	countersMu.Lock()
	defer countersMu.Unlock()

	snapshot := make(map[string]int64, len(counters))
	for code, count := range counters {
		snapshot[code] = count
	}
	return snapshot
}

// ResetCounts clears the counters. Intended for tests.
func ResetCounts() {
	countersMu.Lock()
	counters = make(map[string]int64)
	countersMu.Unlock()
}
