package services

import (
	"errors"
	"sort"

	"concallalpha/internal/apperr"
	"concallalpha/internal/models"

	"gorm.io/gorm"
)

// historyDepth bounds how many past calls feed the trend computation.
const historyDepth = 8

// InsightService assembles the read models for the public company,
// leaderboard and sector views from pipeline-written rows.
type InsightService struct {
	db *gorm.DB
}

func NewInsightService(gdb *gorm.DB) *InsightService {
	return &InsightService{db: gdb}
}

// CompanyInsight is everything the company page needs in one fetch.
type CompanyInsight struct {
	Company        models.Company           `json:"company"`
	Latest         *models.ConcallAnalysis  `json:"latestAnalysis"`
	Outlook        *models.GrowthOutlook    `json:"latestOutlook"`
	SentimentLabel string                   `json:"sentimentLabel"`
	Trend          string                   `json:"trend"`
	History        []models.ConcallAnalysis `json:"history"`
}

func (s *InsightService) CompanyInsight(code string) (*CompanyInsight, error) {
	var company models.Company
	if err := s.db.Where("code = ?", code).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	var history []models.ConcallAnalysis
	err := s.db.Where("company_code = ?", code).
		Order("created_at DESC").Limit(historyDepth).Find(&history).Error
	if err != nil {
		return nil, err
	}
	// Newest-first from the query; trend math wants chronological order.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	insight := &CompanyInsight{
		Company: company,
		Trend:   TrendFlat,
		History: history,
	}

	if len(history) > 0 {
		latest := history[len(history)-1]
		insight.Latest = &latest
		insight.SentimentLabel = SentimentLabel(latest.SentimentScore)

		scores := make([]float64, len(history))
		for i, a := range history {
			scores[i] = a.SentimentScore
		}
		insight.Trend = TrendDirection(scores)
	}

	var outlook models.GrowthOutlook
	err = s.db.Where("company_code = ?", code).Order("created_at DESC").First(&outlook).Error
	if err == nil {
		insight.Outlook = &outlook
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return insight, nil
}

// LeaderboardEntry ranks a company by its latest growth-outlook score.
type LeaderboardEntry struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	OutlookScore float64 `json:"outlookScore"`
	FiscalPeriod string  `json:"fiscalPeriod"`
	Guidance     string  `json:"guidance"`
}

// Leaderboard returns the top companies by latest outlook score,
// ties broken by code so the order is stable.
func (s *InsightService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var companies []models.Company
	if err := s.db.Find(&companies).Error; err != nil {
		return nil, err
	}
	byCode := make(map[string]models.Company, len(companies))
	for _, c := range companies {
		byCode[c.Code] = c
	}

	var outlooks []models.GrowthOutlook
	if err := s.db.Order("created_at DESC").Find(&outlooks).Error; err != nil {
		return nil, err
	}

	// Newest row per company wins.
	entries := make([]LeaderboardEntry, 0, len(byCode))
	seen := make(map[string]bool, len(byCode))
	for _, o := range outlooks {
		if seen[o.CompanyCode] {
			continue
		}
		seen[o.CompanyCode] = true
		company, ok := byCode[o.CompanyCode]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Code:         company.Code,
			Name:         company.Name,
			Sector:       company.Sector,
			OutlookScore: o.OutlookScore,
			FiscalPeriod: o.FiscalPeriod,
			Guidance:     o.Guidance,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OutlookScore != entries[j].OutlookScore {
			return entries[i].OutlookScore > entries[j].OutlookScore
		}
		return entries[i].Code < entries[j].Code
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// SectorStat aggregates the latest sentiment per company across a
// sector.
type SectorStat struct {
	Sector       string  `json:"sector"`
	Companies    int     `json:"companies"`
	AvgSentiment float64 `json:"avgSentiment"`
	Label        string  `json:"label"`
}

// SectorStats averages each company's latest sentiment score within its
// sector, sorted by average descending.
func (s *InsightService) SectorStats() ([]SectorStat, error) {
	var companies []models.Company
	if err := s.db.Find(&companies).Error; err != nil {
		return nil, err
	}
	sectorByCode := make(map[string]string, len(companies))
	for _, c := range companies {
		sectorByCode[c.Code] = c.Sector
	}

	var analyses []models.ConcallAnalysis
	if err := s.db.Order("created_at DESC").Find(&analyses).Error; err != nil {
		return nil, err
	}

	type agg struct {
		sum   float64
		count int
	}
	sums := make(map[string]*agg)
	seen := make(map[string]bool)
	for _, a := range analyses {
		if seen[a.CompanyCode] {
			continue
		}
		seen[a.CompanyCode] = true
		sector, ok := sectorByCode[a.CompanyCode]
		if !ok || sector == "" {
			continue
		}
		if sums[sector] == nil {
			sums[sector] = &agg{}
		}
		sums[sector].sum += a.SentimentScore
		sums[sector].count++
	}

	stats := make([]SectorStat, 0, len(sums))
	for sector, a := range sums {
		avg := a.sum / float64(a.count)
		stats = append(stats, SectorStat{
			Sector:       sector,
			Companies:    a.count,
			AvgSentiment: avg,
			Label:        SentimentLabel(avg),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgSentiment != stats[j].AvgSentiment {
			return stats[i].AvgSentiment > stats[j].AvgSentiment
		}
		return stats[i].Sector < stats[j].Sector
	})
	return stats, nil
}
