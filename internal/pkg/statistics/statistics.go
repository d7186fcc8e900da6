package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/internal/pkg/cache"
	"github.com/rideway/rideway/internal/pkg/database"
)

const (
	CacheKeyMotorcycles = "statistics:motorcycles:total"
	CacheKeyRecords     = "statistics:records:total"
	CacheKeyUsers       = "statistics:users:total"
	CacheExpiration     = 30 * time.Minute
)

// StatisticsData holds the fleet-wide counters shown on the dashboard
type StatisticsData struct {
	TotalMotorcycles int
	TotalRecords     int
	TotalUsers       int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cache is older than the update interval
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalMotorcycles int64
	if err := db.Model(&models.Motorcycle{}).Count(&totalMotorcycles).Error; err != nil {
		log.Printf("Error counting motorcycles: %v", err)
		return err
	}

	var totalRecords int64
	if err := db.Model(&models.MaintenanceRecord{}).Count(&totalRecords).Error; err != nil {
		log.Printf("Error counting maintenance records: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyMotorcycles, strconv.FormatInt(totalMotorcycles, 10), CacheExpiration); err != nil {
		log.Printf("Error caching motorcycle count: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyRecords, strconv.FormatInt(totalRecords, 10), CacheExpiration); err != nil {
		log.Printf("Error caching record count: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching user count: %v", err)
		return err
	}

	return nil
}

// GetStatistics returns the cached counters, falling back to the database
func GetStatistics() StatisticsData {
	return StatisticsData{
		TotalMotorcycles: getCachedCount(CacheKeyMotorcycles, &models.Motorcycle{}),
		TotalRecords:     getCachedCount(CacheKeyRecords, &models.MaintenanceRecord{}),
		TotalUsers:       getCachedCount(CacheKeyUsers, &models.User{}),
	}
}

func getCachedCount(key string, model interface{}) int {
	val, err := cache.GetInt(key)
	if err != nil {
		// Not in cache: count from database and refill
		var count int64
		db := database.GetDB()
		if err := db.Model(model).Count(&count).Error; err != nil {
			log.Printf("Error counting for %s: %v", key, err)
			return 0
		}
		if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
		}
		return int(count)
	}
	return val
}
