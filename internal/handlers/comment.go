package handlers

import (
	"concallalpha/internal/apperr"
	"concallalpha/internal/middleware"
	"concallalpha/internal/services"
	"concallalpha/internal/store"
	"concallalpha/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentHandler serves the anonymous comment/like/report API. The
// visitor identity middleware must run before every route here.
type CommentHandler struct {
	comments *store.CommentStore
	likes    *store.LikeStore
	reports  *store.ReportStore
}

func NewCommentHandler(gdb *gorm.DB) *CommentHandler {
	return &CommentHandler{
		comments: store.NewCommentStore(gdb),
		likes:    store.NewLikeStore(gdb),
		reports:  store.NewReportStore(gdb),
	}
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req struct {
		CompanyCode string `json:"companyCode"`
		CommentText string `json:"commentText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONFail(c, apperr.ErrPayload)
		return
	}

	comment, err := h.comments.Create(req.CompanyCode, req.CommentText, middleware.VisitorID(c))
	if err != nil {
		JSONFail(c, err)
		return
	}
	JSONOK(c, gin.H{"comment": comment})
}

// List handles GET /api/comments?companyCode&limit&cursor
func (h *CommentHandler) List(c *gin.Context) {
	page, err := h.comments.List(
		c.Query("companyCode"),
		middleware.VisitorID(c),
		utils.StringToInt(c.Query("limit")),
		c.Query("cursor"),
	)
	if err != nil {
		JSONFail(c, err)
		return
	}
	JSONOK(c, gin.H{"comments": page.Comments, "nextCursor": page.NextCursor})
}

// Like handles POST /api/comments/like
func (h *CommentHandler) Like(c *gin.Context) {
	cid, ok := bindCommentID(c)
	if !ok {
		return
	}

	result, err := h.likes.Toggle(cid, middleware.VisitorID(c))
	if err != nil {
		JSONFail(c, err)
		return
	}
	services.GetReconciler().Schedule(result.CommentID)
	JSONOK(c, gin.H{"liked": result.Liked, "likesCount": result.LikesCount})
}

// Report handles POST /api/comments/report
func (h *CommentHandler) Report(c *gin.Context) {
	var req struct {
		CommentID string `json:"commentId"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONFail(c, apperr.ErrPayload)
		return
	}
	if _, err := uuid.Parse(req.CommentID); err != nil {
		JSONFail(c, apperr.Validationf("commentId must be a UUID"))
		return
	}

	commentID, err := h.reports.Report(req.CommentID, middleware.VisitorID(c), req.Reason)
	if err != nil {
		JSONFail(c, err)
		return
	}
	services.GetReconciler().Schedule(commentID)
	JSONOK(c, gin.H{"reported": true})
}

// bindCommentID decodes a {commentId} body and rejects anything that is
// not UUID-shaped before the store is touched.
func bindCommentID(c *gin.Context) (string, bool) {
	var req struct {
		CommentID string `json:"commentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONFail(c, apperr.ErrPayload)
		return "", false
	}
	if _, err := uuid.Parse(req.CommentID); err != nil {
		JSONFail(c, apperr.Validationf("commentId must be a UUID"))
		return "", false
	}
	return req.CommentID, true
}
