// internal/api/handlers/inventory_handler.go
package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/repleniq/backend-go/internal/domain"
	"github.com/repleniq/backend-go/internal/ingest"
	"github.com/repleniq/backend-go/internal/notify"
	"github.com/repleniq/backend-go/internal/service"
)

type InventoryHandler struct {
	inventory *service.InventoryService
	uploadDir string
}

func NewInventoryHandler(inventory *service.InventoryService, uploadDir string) *InventoryHandler {
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}
	return &InventoryHandler{inventory: inventory, uploadDir: uploadDir}
}

// Upload accepts one or more spreadsheet files, runs the replenishment
// pipeline over the combined rows and replaces the current snapshot. The
// response carries the run summary so the client can render immediately.
func (h *InventoryHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		if single := form.File["file"]; len(single) > 0 {
			files = single
		}
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", h.uploadDir).Msg("failed to create upload dir")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, path); err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
			return
		}
		paths = append(paths, path)
	}

	parsed := make([][]domain.RawRow, len(paths))
	g, _ := errgroup.WithContext(c.Request.Context())
	for i, path := range paths {
		g.Go(func() error {
			rows, err := ingest.ReadFile(path)
			if err != nil {
				return err
			}
			parsed[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to parse uploaded files")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rows []domain.RawRow
	for _, part := range parsed {
		rows = append(rows, part...)
	}

	result, err := h.inventory.Upload(c.Request.Context(), rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    len(result.Products),
		"suggestions": len(result.Suggestions),
		"metrics":     result.Metrics,
	})
}

// GetProducts returns the enriched products with optional filtering and
// pagination.
func (h *InventoryHandler) GetProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Query:     c.Query("q"),
		Vendor:    c.Query("vendor"),
		LowStock:  parseBool(c.Query("low_stock")),
		Overstock: parseBool(c.Query("overstock")),
		Page:      parseNonNegativeInt(c.Query("page")),
		PageSize:  parsePositiveIntWithDefault(c.Query("page_size"), 0),
	}

	products, total, err := h.inventory.Products(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": products, "total": total})
}

func (h *InventoryHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.inventory.Metrics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	items, err := h.inventory.LowStock()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *InventoryHandler) GetOverstock(c *gin.Context) {
	items, err := h.inventory.Overstock()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// GetSuggestions returns the ranked order suggestions with optional filters.
func (h *InventoryHandler) GetSuggestions(c *gin.Context) {
	filter := domain.SuggestionFilter{
		Query:          c.Query("q"),
		Vendor:         c.Query("vendor"),
		Priority:       c.Query("priority"),
		ExcludeBundled: parseBool(c.Query("exclude_bundled")),
	}

	suggestions, err := h.inventory.Suggestions(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": suggestions, "total": len(suggestions)})
}

func (h *InventoryHandler) GetVendors(c *gin.Context) {
	vendors, err := h.inventory.Vendors()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vendors)
}

// GetForecast projects aggregate sellable inventory over the requested
// horizon in days.
func (h *InventoryHandler) GetForecast(c *gin.Context) {
	days := parsePositiveIntWithDefault(c.Query("days"), 0)

	points, err := h.inventory.Forecast(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (h *InventoryHandler) GetReorders(c *gin.Context) {
	reorders, err := h.inventory.Reorders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": reorders, "total": len(reorders)})
}

// SendOrder composes and dispatches a vendor order email.
func (h *InventoryHandler) SendOrder(c *gin.Context) {
	var req notify.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no items in order"})
		return
	}

	if err := h.inventory.PlaceOrder(c.Request.Context(), req); err != nil {
		log.Error().Err(err).Str("vendor", req.VendorName).Msg("failed to send order email")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send order email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order email sent", "vendor": req.VendorName})
}

func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrEmptySnapshot) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseBool(value string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && v
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func parseNonNegativeInt(value string) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v >= 0 {
		return v
	}
	return 0
}
