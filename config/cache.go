package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// Caches for computed analysis artifacts. Entries are keyed by the
	// dataset store version, and the upload handler flushes everything
	// when a new dataset lands.
	AnalysisCache    *cache.Cache
	SeasonalityCache *cache.Cache
	GapSeriesCache   *cache.Cache
)

const (
	analysisCacheDuration = 15 * time.Minute
	analysisCleanup       = 30 * time.Minute
)

func InitCache() {
	AnalysisCache = cache.New(analysisCacheDuration, analysisCleanup)
	SeasonalityCache = cache.New(analysisCacheDuration, analysisCleanup)
	GapSeriesCache = cache.New(analysisCacheDuration, analysisCleanup)
}

func ClearAllCaches() {
	AnalysisCache.Flush()
	SeasonalityCache.Flush()
	GapSeriesCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
