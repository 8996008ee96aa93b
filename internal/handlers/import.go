package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kamenart/catalog-service/internal/catalog"
	"github.com/kamenart/catalog-service/internal/storage"
)

// maxImportSize bounds uploaded price lists at 20 MB.
const maxImportSize = 20 << 20

// ImportPriceList applies an uploaded xlsx price list.
// POST /internal/admin/import
func ImportPriceList(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}

	result, err := priceImport.Import(c.Request.Context(), content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if priceArchive != nil {
		meta := storage.Metadata{RowsUpdated: result.Updated, RowErrors: len(result.Errors)}
		if _, err := priceArchive.Save(c.Request.Context(), file.Filename, content, meta); err != nil {
			log.Warn().Err(err).Str("file", file.Filename).Msg("Failed to archive price list")
		}
	}

	// Pricing may have changed anywhere; drop all snapshots.
	if nameCache != nil {
		for _, cat := range catalog.Categories() {
			nameCache.Invalidate(cat)
		}
	}

	log.Info().
		Str("file", file.Filename).
		Int("updated", result.Updated).
		Int("errors", len(result.Errors)).
		Msg("Price list imported")

	c.JSON(http.StatusOK, result)
}
