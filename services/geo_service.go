package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/utils"
)

var (
	ErrZipNotFound   = errors.New("zip code not found")
	ErrInvalidRadius = errors.New("radius must be between 1 and 500 miles")
)

const (
	searchCacheSize = 256
	searchCacheTTL  = 5 * time.Minute
	maxRadiusMiles  = 500
)

// InspectorDistance is one radius-search hit.
type InspectorDistance struct {
	Inspector     models.Inspector `json:"inspector"`
	DistanceMiles float64          `json:"distance_miles"`
}

// GeoService answers "which available inspectors are within N miles of this
// zip". Results are cached for a fixed TTL; any inspector mutation purges
// the whole cache rather than tracking affected keys.
type GeoService struct {
	DB    *gorm.DB
	cache *expirable.LRU[string, []InspectorDistance]
}

func NewGeoService(db *gorm.DB) *GeoService {
	return &GeoService{
		DB:    db,
		cache: expirable.NewLRU[string, []InspectorDistance](searchCacheSize, nil, searchCacheTTL),
	}
}

// SearchByZip returns active, available inspectors within radiusMiles of the
// centroid of the given zip, nearest first.
func (gs *GeoService) SearchByZip(zip string, radiusMiles float64) ([]InspectorDistance, error) {
	if radiusMiles <= 0 || radiusMiles > maxRadiusMiles {
		return nil, ErrInvalidRadius
	}

	key := fmt.Sprintf("%s:%.0f", zip, radiusMiles)
	if hits, ok := gs.cache.Get(key); ok {
		return hits, nil
	}

	var center models.ZipCode
	if err := gs.DB.First(&center, "zip = ?", zip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZipNotFound
		}
		return nil, err
	}

	// Coarse bounding box in SQL, exact haversine in Go. One degree of
	// latitude is ~69 miles; longitude degrees shrink by cos(latitude), so
	// widen the box accordingly. Clamped so polar centroids stay finite.
	latDelta := radiusMiles / 69.0
	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lonDelta := latDelta / cosLat

	var candidates []models.Inspector
	err := gs.DB.
		Where("is_active = ? AND status = ?", true, models.InspectorAvailable).
		Where("latitude BETWEEN ? AND ?", center.Latitude-latDelta, center.Latitude+latDelta).
		Where("longitude BETWEEN ? AND ?", center.Longitude-lonDelta, center.Longitude+lonDelta).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	hits := make([]InspectorDistance, 0, len(candidates))
	for _, insp := range candidates {
		d := utils.HaversineMiles(center.Latitude, center.Longitude, insp.Latitude, insp.Longitude)
		if d <= radiusMiles {
			hits = append(hits, InspectorDistance{Inspector: insp, DistanceMiles: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].DistanceMiles < hits[j].DistanceMiles
	})

	gs.cache.Add(key, hits)
	return hits, nil
}

// PurgeCache drops every cached search result. Called after inspector writes.
func (gs *GeoService) PurgeCache() {
	gs.cache.Purge()
}
