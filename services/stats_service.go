package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/models"
)

// PaymentStats aggregates the payments taken over the requested window.
type PaymentStats struct {
	TodayTotal   float64       `json:"today_total"`
	MethodTotals []MethodTotal `json:"method_totals"`
	HourlyTotals []HourlyTotal `json:"hourly_totals"`
}

type MethodTotal struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
}

type HourlyTotal struct {
	Hour  int     `json:"hour"`
	Total float64 `json:"total"`
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// GetPaymentStats reports today's takings plus per-method and per-hour
// totals over the last dayRange days (today counts as day one).
func (s *StatsService) GetPaymentStats(dayRange int) (*PaymentStats, error) {
	if dayRange < 1 {
		dayRange = 1
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rangeStart := todayStart.AddDate(0, 0, -(dayRange - 1))

	stats := &PaymentStats{
		MethodTotals: []MethodTotal{},
		HourlyTotals: []HourlyTotal{},
	}

	if err := s.db.Model(&models.Payment{}).
		Where("created_at >= ?", todayStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TodayTotal).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Payment{}).
		Where("created_at >= ?", rangeStart).
		Select("method, SUM(amount) as total").
		Group("method").
		Order("total desc").
		Scan(&stats.MethodTotals).Error; err != nil {
		return nil, err
	}

	// Hour buckets are built in Go so the query stays portable between the
	// MySQL runtime and the sqlite test databases.
	var payments []models.Payment
	if err := s.db.Where("created_at >= ?", rangeStart).Find(&payments).Error; err != nil {
		return nil, err
	}
	hourly := make(map[int]float64)
	for _, p := range payments {
		hourly[p.CreatedAt.Hour()] += p.Amount
	}
	for hour := 0; hour < 24; hour++ {
		if total, ok := hourly[hour]; ok {
			stats.HourlyTotals = append(stats.HourlyTotals, HourlyTotal{Hour: hour, Total: total})
		}
	}
	return stats, nil
}
