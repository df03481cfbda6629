package models

import (
	"time"
)

// ConcallAnalysis is one earnings-call sentiment reading for a company.
// Rows are written by the offline scoring pipeline; this service only
// reads them.
type ConcallAnalysis struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	CompanyCode    string    `gorm:"size:24;not null;index" json:"company_code"`
	FiscalPeriod   string    `gorm:"size:16;not null" json:"fiscal_period"` // e.g. "Q1FY26"
	SentimentScore float64   `gorm:"not null" json:"sentiment_score"`      // 0-100
	Summary        string    `gorm:"type:text" json:"summary"`             // markdown
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// GrowthOutlook is the forward-guidance reading extracted from the same
// call, kept separate because the pipeline emits it on its own cadence.
type GrowthOutlook struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	CompanyCode  string    `gorm:"size:24;not null;index" json:"company_code"`
	FiscalPeriod string    `gorm:"size:16;not null" json:"fiscal_period"`
	OutlookScore float64   `gorm:"not null" json:"outlook_score"` // 0-100
	Guidance     string    `gorm:"size:500" json:"guidance"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
