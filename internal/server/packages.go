package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
)

type movePackageRequest struct {
	Ordinal *int `json:"ordinal"`
}

func (s *Server) CreatePackage(c *gin.Context) {
	var req quotedomain.AddPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pkg, err := s.quoteSvc.AddPackage(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": pkg})
}

func (s *Server) UpdatePackage(c *gin.Context) {
	var req quotedomain.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pkg, err := s.quoteSvc.UpdatePackage(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pkg})
}

func (s *Server) DeletePackage(c *gin.Context) {
	snap, err := s.quoteSvc.DeletePackage(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondView(c, snap)
}

func (s *Server) MovePackage(c *gin.Context) {
	var req movePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Ordinal == nil {
		AbortWithError(c, quotedomain.ErrInvalidOrdinal)
		return
	}

	snap, err := s.quoteSvc.MovePackage(c.Request.Context(), strings.TrimSpace(c.Param("id")), *req.Ordinal)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondView(c, snap)
}

func (s *Server) CreateGroup(c *gin.Context) {
	var req quotedomain.AddGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	group, err := s.quoteSvc.AddGroup(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": group})
}

func (s *Server) UpdateGroup(c *gin.Context) {
	var req quotedomain.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	group, err := s.quoteSvc.UpdateGroup(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": group})
}

func (s *Server) DeleteGroup(c *gin.Context) {
	snap, err := s.quoteSvc.DeleteGroup(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondView(c, snap)
}
