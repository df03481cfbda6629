package handlers

import (
	"fmt"
	"net/http"
	"time"

	"concallalpha/internal/apperr"
	"concallalpha/internal/services"
	"concallalpha/internal/store"
	"concallalpha/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CompanyHandler serves the public pages and the read-only insight API.
type CompanyHandler struct {
	insights *services.InsightService
}

func NewCompanyHandler(gdb *gorm.DB) *CompanyHandler {
	return &CompanyHandler{insights: services.NewInsightService(gdb)}
}

// Home renders the growth-outlook leaderboard.
func (h *CompanyHandler) Home(c *gin.Context) {
	cacheKey := "page:home"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "home.html", data)
			return
		}
	}

	entries, err := h.insights.Leaderboard(20)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "unable to load leaderboard")
		return
	}

	data := gin.H{
		"Title":   "Growth Outlook Leaderboard",
		"Entries": entries,
	}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	Render(c, http.StatusOK, "home.html", data)
}

// Detail renders one company's scores, trend and concall summary.
func (h *CompanyHandler) Detail(c *gin.Context) {
	code := c.Param("code")
	if !store.ValidCompanyCode(code) {
		RenderError(c, http.StatusBadRequest, "invalid company code")
		return
	}

	insight, err := h.insights.CompanyInsight(code)
	if err != nil {
		RenderError(c, http.StatusNotFound, "company not found")
		return
	}

	data := gin.H{
		"Title":   insight.Company.Name,
		"Insight": insight,
	}
	if insight.Latest != nil && insight.Latest.Summary != "" {
		data["SummaryHTML"] = utils.RenderMarkdown(insight.Latest.Summary)
	}
	Render(c, http.StatusOK, "company.html", data)
}

// Sectors renders the sector sentiment rollup.
func (h *CompanyHandler) Sectors(c *gin.Context) {
	cacheKey := "page:sectors"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "sectors.html", data)
			return
		}
	}

	stats, err := h.insights.SectorStats()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "unable to load sectors")
		return
	}

	data := gin.H{
		"Title":   "Sector Sentiment",
		"Sectors": stats,
	}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	Render(c, http.StatusOK, "sectors.html", data)
}

// APICompany handles GET /api/companies/:code
func (h *CompanyHandler) APICompany(c *gin.Context) {
	code := c.Param("code")
	if !store.ValidCompanyCode(code) {
		JSONFail(c, apperr.Validationf("invalid company code"))
		return
	}

	insight, err := h.insights.CompanyInsight(code)
	if err != nil {
		JSONFail(c, err)
		return
	}
	JSONOK(c, gin.H{"company": insight})
}

// APILeaderboard handles GET /api/leaderboard?limit
func (h *CompanyHandler) APILeaderboard(c *gin.Context) {
	limit := utils.StringToInt(c.Query("limit"))
	cacheKey := fmt.Sprintf("api:leaderboard:%d", limit)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if entries, ok := cached.([]services.LeaderboardEntry); ok {
			JSONOK(c, gin.H{"entries": entries})
			return
		}
	}

	entries, err := h.insights.Leaderboard(limit)
	if err != nil {
		JSONFail(c, err)
		return
	}
	utils.GetCache().Set(cacheKey, entries, 1*time.Minute)
	JSONOK(c, gin.H{"entries": entries})
}

// APISectors handles GET /api/sectors
func (h *CompanyHandler) APISectors(c *gin.Context) {
	stats, err := h.insights.SectorStats()
	if err != nil {
		JSONFail(c, err)
		return
	}
	JSONOK(c, gin.H{"sectors": stats})
}
