package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckNameRequest holds the query parameters of the name check
type CheckNameRequest struct {
	Name      string `form:"name" binding:"required"`
	ExcludeID *int64 `form:"excludeId"`
}

// CheckNameResponse reports whether the candidate name is free
type CheckNameResponse struct {
	Name   string `json:"name"`
	Unique bool   `json:"unique"`
}

// CheckName verifies a product name across all categories. Lookup
// failures report the name as unique so editing is never blocked.
// GET /internal/admin/check-name
func CheckName(c *gin.Context) {
	var req CheckNameRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unique := nameChecker.Check(c.Request.Context(), req.Name, req.ExcludeID)
	c.JSON(http.StatusOK, CheckNameResponse{Name: req.Name, Unique: unique})
}
