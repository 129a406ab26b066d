package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListSuppliers(c *gin.Context) {
	suppliers, err := s.refrepo.ListSuppliers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": suppliers})
}

func (s *Server) ListManufacturers(c *gin.Context) {
	manufacturers, err := s.refrepo.ListManufacturers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": manufacturers})
}

func (s *Server) ListEquipmentTypes(c *gin.Context) {
	types, err := s.refrepo.ListEquipmentTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": types})
}
