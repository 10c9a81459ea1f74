package handler

import (
	"errors"
	"net/http"

	"diversity-shop/internal/service"

	"github.com/labstack/echo/v4"
)

type ShopHandler struct {
	catalogService service.CatalogService
}

func NewShopHandler(catalogService service.CatalogService) *ShopHandler {
	return &ShopHandler{
		catalogService: catalogService,
	}
}

func (h *ShopHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *ShopHandler) Browse(c echo.Context) error {
	ctx := c.Request().Context()

	category := c.QueryParam("category")
	if category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing category parameter")
	}

	products, err := h.catalogService.BrowseCategory(ctx, category)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ShopHandler) ProductDetails(c echo.Context) error {
	ctx := c.Request().Context()

	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing name parameter")
	}

	product, err := h.catalogService.GetProduct(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, product)
}
