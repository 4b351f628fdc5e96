package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

const citiesCacheKey = "cities:all"

// fuzzy matches below this similarity are dropped
const minCitySimilarity = 0.7

type CityService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  *Cache
}

type CityServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  *Cache
}

func NewCityService(opts CityServiceOptions) *CityService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &CityService{db: opts.DB, logger: opts.Logger, cache: opts.Cache}
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

func (s *CityService) all(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if s.cache.Get(ctx, citiesCacheKey, &cities) {
		return cities, nil
	}
	if err := s.db.WithContext(ctx).Preload("Country").Order("name").Find(&cities).Error; err != nil {
		return nil, apperrors.Internal("Failed to load cities", err)
	}
	if err := s.cache.Set(ctx, citiesCacheKey, cities); err != nil {
		s.logger.Warn("Lỗi khi lưu cities vào Redis: %v", err)
	}
	return cities, nil
}

type scoredCity struct {
	city  models.City
	score float64
}

// scoreCity returns how well query matches the city or its country, 0 for no
// match. Substring hits rank above fuzzy ones, prefixes above substrings.
func scoreCity(query string, city models.City) float64 {
	best := 0.0
	for _, field := range []string{normalizeInput(city.Name), normalizeInput(city.Country.Name)} {
		if field == "" {
			continue
		}
		var score float64
		switch {
		case field == query:
			score = 4
		case strings.HasPrefix(field, query):
			score = 3 + calculateSimilarity(query, field)/2
		case strings.Contains(field, query):
			score = 2 + calculateSimilarity(query, field)/2
		default:
			if sim := calculateSimilarity(query, field); sim >= minCitySimilarity {
				score = 1 + sim/2
			}
		}
		if score > best {
			best = score
		}
	}
	return best
}

// Search tìm thành phố theo tên thành phố hoặc quốc gia, không phân biệt hoa
// thường và dấu.
func (s *CityService) Search(ctx context.Context, query string) ([]models.City, error) {
	cities, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	q := normalizeInput(query)
	if q == "" {
		return cities, nil
	}

	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, normalizeInput(c.Name))
	}
	closest := ""
	if len(names) > 0 {
		closest = createMatcher(names).Closest(q)
	}

	var scored []scoredCity
	for _, c := range cities {
		score := scoreCity(q, c)
		if score == 0 {
			continue
		}
		if closest != "" && normalizeInput(c.Name) == closest {
			score += 0.1
		}
		scored = append(scored, scoredCity{city: c, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].city.Name < scored[j].city.Name
	})

	result := make([]models.City, 0, len(scored))
	for _, sc := range scored {
		result = append(result, sc.city)
	}
	return result, nil
}

// ByName tìm thành phố theo tên chính xác (không phân biệt hoa thường)
func (s *CityService) ByName(ctx context.Context, name string) (*models.City, error) {
	var city models.City
	err := s.db.WithContext(ctx).Preload("Country").
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&city).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("City '" + name + "' not found")
		}
		return nil, apperrors.Internal("Failed to load city", err)
	}
	return &city, nil
}
