package catalog

import (
	"net/http"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/logger"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/middleware"

	"github.com/gin-gonic/gin"
)

const (
	composePath  = "/compose"
	productsPath = "/products"
)

// Handler serves the product listing and the gated compose flow.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the public listing and the gated compose routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, gate *middleware.AuthMiddleware) {
	r.GET(productsPath, h.listProducts)

	protected := r.Group("/")
	protected.Use(middleware.GinRequireAuth(gate))
	protected.GET(composePath, h.composePage)
	protected.POST(composePath, h.compose)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("failed to list products", map[string]any{
			"error": err.Error(),
		})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "products.html", gin.H{
		"Products": products,
	})
}

func (h *Handler) composePage(c *gin.Context) {
	c.HTML(http.StatusOK, "compose.html", nil)
}

type composeRequest struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Quantity    int    `form:"quantity"`
	Price       int64  `form:"price"`
}

// compose creates a listing attributed to the session identity. The
// creator always comes from the resolved user, never the form body.
func (h *Handler) compose(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		// The gate should have redirected already.
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	var req composeRequest
	if err := c.ShouldBind(&req); err != nil || req.Name == "" {
		c.Redirect(http.StatusFound, composePath)
		return
	}

	product, err := h.store.Create(c.Request.Context(), Product{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		PriceCents:  req.Price,
		CreatorID:   user.ID,
	})
	if err != nil {
		logger.Error("failed to create product", map[string]any{
			"error": err.Error(),
		})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	logger.Info("product created", map[string]any{
		"product_id": product.ID,
		"creator_id": product.CreatorID,
	})

	c.Redirect(http.StatusFound, productsPath)
}
