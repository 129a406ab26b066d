package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
)

type moveLineItemRequest struct {
	Address string `json:"address"`
}

func (s *Server) CreatePrimaryLine(c *gin.Context) {
	li, err := s.quoteSvc.AddPrimaryLine(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": li})
}

func (s *Server) CreateSubLine(c *gin.Context) {
	li, err := s.quoteSvc.AddSubLine(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": li})
}

func (s *Server) UpdateLineItem(c *gin.Context) {
	var req quotedomain.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	li, err := s.quoteSvc.UpdateLineItem(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": li})
}

func (s *Server) DeleteLineItem(c *gin.Context) {
	snap, err := s.quoteSvc.DeleteLineItem(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondView(c, snap)
}

func (s *Server) MoveLineItem(c *gin.Context) {
	var req moveLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	snap, err := s.quoteSvc.MoveLineItem(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Address)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondView(c, snap)
}
