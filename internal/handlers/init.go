package handlers

import (
	"github.com/kamenart/catalog-service/internal/cache"
	"github.com/kamenart/catalog-service/internal/database"
	"github.com/kamenart/catalog-service/internal/importer"
	"github.com/kamenart/catalog-service/internal/storage"
	"github.com/kamenart/catalog-service/internal/uniqueness"
)

var (
	productStore *database.ProductStore
	nameChecker  *uniqueness.Checker
	priceImport  *importer.Importer
	nameCache    *cache.CachedSource
	// priceArchive may be nil; imports then skip archiving.
	priceArchive *storage.PriceListArchive
)

// Init wires the handler package's collaborators. Call once at startup,
// before routes are served.
func Init(store *database.ProductStore, checker *uniqueness.Checker, imp *importer.Importer, cached *cache.CachedSource, archive *storage.PriceListArchive) {
	productStore = store
	nameChecker = checker
	priceImport = imp
	nameCache = cached
	priceArchive = archive
}
