package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/product/upload"
	"github.com/fekuna/omnipos-storefront/internal/product/variant"
	"github.com/fekuna/omnipos-storefront/internal/wizard"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const maxImageBytes = 8 << 20

var errNotAnImage = errors.New("uploaded file is not an image")

var sentinels = []httpx.Sentinel{
	{Err: product.ErrProductNotFound, Status: http.StatusNotFound},
	{Err: product.ErrDraftNotFound, Status: http.StatusNotFound},
	{Err: product.ErrVariantNotFound, Status: http.StatusNotFound},
	{Err: upload.ErrImageNotFound, Status: http.StatusNotFound},
	{Err: product.ErrNotAtReview, Status: http.StatusConflict},
	{Err: wizard.ErrTerminalStep, Status: http.StatusConflict},
	{Err: variant.ErrReplaceNotConfirmed, Status: http.StatusConflict},
	{Err: upload.ErrUploadsPending, Status: http.StatusConflict},
	{Err: upload.ErrUploadsFailed, Status: http.StatusConflict},
	{Err: product.ErrUnknownTagKind, Status: http.StatusBadRequest},
	{Err: variant.ErrNegativeStock, Status: http.StatusUnprocessableEntity},
}

type ProductHandler struct {
	uc     product.UseCase
	drafts product.DraftUseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, drafts product.DraftUseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		drafts: drafts,
		logger: log,
	}
}

func currentShop(c *gin.Context) *model.Shop {
	return auth.StateFromContext(c.Request.Context()).CurrentShop
}

func (h *ProductHandler) fail(c *gin.Context, err error) {
	httpx.Fail(c, h.logger, err, sentinels...)
}

// --- Products ---

func (h *ProductHandler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		products []model.Product
		err      error
	)
	if q := c.Query("q"); q != "" {
		products, err = h.uc.SearchProducts(ctx, currentShop(c), q)
	} else {
		products, err = h.uc.ListProducts(ctx, currentShop(c))
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct is public: buyers land on product pages without signing in.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), currentShop(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Drafts ---

func (h *ProductHandler) StartDraft(c *gin.Context) {
	var req dto.StartDraftInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
	}
	view, err := h.drafts.StartDraft(c.Request.Context(), currentShop(c), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *ProductHandler) GetDraft(c *gin.Context) {
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.GetDraft(c.Request.Context(), c.Param("id"))
	})
}

func (h *ProductHandler) UpdateDetails(c *gin.Context) {
	var req dto.DetailsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.UpdateDetails(c.Request.Context(), c.Param("id"), &req)
	})
}

func (h *ProductHandler) AddTags(c *gin.Context) {
	var req dto.TagInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.AddTags(c.Request.Context(), c.Param("id"), &req)
	})
}

func (h *ProductHandler) RemoveTag(c *gin.Context) {
	req := dto.TagInput{Kind: c.Param("kind"), Value: c.Param("value")}
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.RemoveTag(c.Request.Context(), c.Param("id"), &req)
	})
}

func (h *ProductHandler) GenerateVariants(c *gin.Context) {
	var req dto.GenerateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.GenerateVariants(c.Request.Context(), c.Param("id"), &req)
	})
}

func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant index must be a number"})
		return
	}
	var req dto.VariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err)
		return
	}
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.UpdateVariant(c.Request.Context(), c.Param("id"), index, &req)
	})
}

// AddImage accepts one multipart "image" file and an optional "color" field.
func (h *ProductHandler) AddImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		httpx.BadRequest(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		httpx.BadRequest(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		httpx.BadRequest(c, err)
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image must be 8MB or smaller"})
		return
	}
	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		httpx.BadRequest(c, errNotAnImage)
		return
	}

	input := &dto.ImageInput{Filename: fh.Filename, Data: data}
	if color := strings.TrimSpace(c.PostForm("color")); color != "" {
		input.Color = &color
	}
	h.respondDraftStatus(c, http.StatusAccepted, func() (*dto.DraftView, error) {
		return h.drafts.AddImage(c.Request.Context(), c.Param("id"), input)
	})
}

func (h *ProductHandler) RemoveImage(c *gin.Context) {
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.RemoveImage(c.Request.Context(), c.Param("id"), c.Param("imageId"))
	})
}

func (h *ProductHandler) SetCover(c *gin.Context) {
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.SetCover(c.Request.Context(), c.Param("id"), c.Param("imageId"))
	})
}

func (h *ProductHandler) NextStep(c *gin.Context) {
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.Next(c.Request.Context(), c.Param("id"))
	})
}

func (h *ProductHandler) PrevStep(c *gin.Context) {
	h.respondDraft(c, func() (*dto.DraftView, error) {
		return h.drafts.Back(c.Request.Context(), c.Param("id"))
	})
}

func (h *ProductHandler) SubmitDraft(c *gin.Context) {
	p, err := h.drafts.Submit(c.Request.Context(), currentShop(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DiscardDraft(c *gin.Context) {
	if err := h.drafts.Discard(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) respondDraft(c *gin.Context, fn func() (*dto.DraftView, error)) {
	h.respondDraftStatus(c, http.StatusOK, fn)
}

func (h *ProductHandler) respondDraftStatus(c *gin.Context, status int, fn func() (*dto.DraftView, error)) {
	view, err := fn()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, view)
}

// RegisterPublicRoutes mounts the routes buyers reach without a seller session.
func (h *ProductHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id", h.GetProduct)
}

// RegisterRoutes expects rg to already require a signed-in user with a shop selected.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.DELETE("/products/:id", h.DeleteProduct)

	d := rg.Group("/product-drafts")
	d.POST("", h.StartDraft)
	d.GET("/:id", h.GetDraft)
	d.DELETE("/:id", h.DiscardDraft)
	d.PATCH("/:id/details", h.UpdateDetails)
	d.POST("/:id/tags", h.AddTags)
	d.DELETE("/:id/tags/:kind/:value", h.RemoveTag)
	d.POST("/:id/variants/generate", h.GenerateVariants)
	d.PATCH("/:id/variants/:index", h.UpdateVariant)
	d.POST("/:id/images", h.AddImage)
	d.DELETE("/:id/images/:imageId", h.RemoveImage)
	d.PUT("/:id/images/:imageId/cover", h.SetCover)
	d.POST("/:id/next", h.NextStep)
	d.POST("/:id/back", h.PrevStep)
	d.POST("/:id/submit", h.SubmitDraft)
}
