package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService service.ProductService
	logger      *slog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProductHandler")
	}

	return &ProductHandler{
		productService: productService,
		logger:      logger.With(slog.String("component", "product_handler")),
	}
}

// Routes returns a router serving the product resource, to be mounted at /product.
func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Head("/", h.HasProducts)
	r.Post("/", h.CreateProduct)
	r.Get("/", h.ListProducts)
	r.Get("/{id}", h.GetProduct)
	r.Patch("/{id}", h.PatchProduct)
	r.Put("/{id}", h.ReplaceProduct)
	r.Delete("/{id}", h.DeleteProduct)
	return r
}

// HasProducts handles HEAD /product: 200 when any product exists, 204 otherwise.
func (h *ProductHandler) HasProducts(w http.ResponseWriter, r *http.Request) {
	exists, err := h.productService.HasProducts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check products")
		return
	}

	if exists {
		shared.RespondWithStatus(w, http.StatusOK)
		return
	}
	shared.RespondWithStatus(w, http.StatusNoContent)
}

// CreateProduct handles POST /product
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in domain.ProductInput
	if !decodeBody(w, r, &in) {
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create product")
		return
	}

	log.Debug("product created", slog.Int("product_id", product.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, product)
}

// ListProducts handles GET /product
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch products")
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// GetProduct handles GET /product/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, MsgProductNotFound, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// PatchProduct handles PATCH /product/{id}. Only non-empty fields are applied.
func (h *ProductHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, MsgProductNotFound, log)
	if !ok {
		return
	}

	var in domain.ProductInput
	if !decodeBody(w, r, &in) {
		return
	}

	product, err := h.productService.PatchProduct(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update product")
		return
	}

	log.Debug("product patched", slog.Int("product_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// ReplaceProduct handles PUT /product/{id}. The body is checked before the id, so
// an incomplete body is a 400 even for an id that cannot exist.
func (h *ProductHandler) ReplaceProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in domain.ProductInput
	if !decodeValidBody(w, r, &in) {
		return
	}

	id, ok := handlePathID(w, r, MsgProductNotFound, log)
	if !ok {
		return
	}

	product, err := h.productService.ReplaceProduct(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update product")
		return
	}

	log.Debug("product replaced", slog.Int("product_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// DeleteProduct handles DELETE /product/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, MsgProductNotFound, log)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete product")
		return
	}

	log.Debug("product deleted", slog.Int("product_id", id))
	shared.RespondWithMessage(w, r, http.StatusOK, "Product deleted successfully")
}
