package rediscache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Cache key builders. Keeping them in one place makes invalidation
// patterns easy to audit.

const (
	jobKeyPrefix       = "job:"
	jobSearchKeyPrefix = "job_search:"
	companyKeyPrefix   = "company:"
	statsKey           = "stats:jobs"
)

// JobKey returns the cache key for a single job.
func JobKey(jobID int64) string {
	return fmt.Sprintf("%s%d", jobKeyPrefix, jobID)
}

// CompanyKey returns the cache key for a single company.
func CompanyKey(companyID int64) string {
	return fmt.Sprintf("%s%d", companyKeyPrefix, companyID)
}

// JobStatisticsKey returns the cache key for the statistics summary.
func JobStatisticsKey() string {
	return statsKey
}

// JobSearchKey hashes a canonical parameter string into a short search key.
func JobSearchKey(canonicalParams string) string {
	sum := md5.Sum([]byte(canonicalParams))
	return jobSearchKeyPrefix + hex.EncodeToString(sum[:])[:8]
}

// JobSearchPattern matches every cached search result set.
func JobSearchPattern() string {
	return jobSearchKeyPrefix + "*"
}
