package api

import (
	"net/http"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/constants"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	cat *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

// ListCards returns the full card catalog.
func (h *CatalogHandler) ListCards(c *gin.Context) {
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, h.cat.Cards)
}

// ListEnemies returns the enemy roster.
func (h *CatalogHandler) ListEnemies(c *gin.Context) {
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, h.cat.Enemies)
}
