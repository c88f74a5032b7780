package api

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/infra"
)

// PropertyHandler 处理地产登记簿相关的 HTTP 请求
type PropertyHandler struct {
	registry domain.RegistryService
	store    *infra.ImageStore
}

// NewPropertyHandler 创建登记簿处理器
func NewPropertyHandler(registry domain.RegistryService, store *infra.ImageStore) *PropertyHandler {
	return &PropertyHandler{registry: registry, store: store}
}

// List 返回全部地产记录
// GET /api/properties
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	properties, err := h.registry.List(context.Background())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(properties)
}

// Search 按条件检索地产记录
// GET /api/properties/search?location=&propertyType=&minPrice=&maxPrice=&minArea=&maxArea=
func (h *PropertyHandler) Search(c *fiber.Ctx) error {
	filters := domain.SearchFilters{
		Location:     c.Query("location"),
		PropertyType: c.Query("propertyType"),
	}

	var ok bool
	if filters.MinPrice, ok = queryFloat(c, "minPrice"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid minPrice"})
	}
	if filters.MaxPrice, ok = queryFloat(c, "maxPrice"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid maxPrice"})
	}
	if filters.MinArea, ok = queryFloat(c, "minArea"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid minArea"})
	}
	if filters.MaxArea, ok = queryFloat(c, "maxArea"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid maxArea"})
	}

	properties, err := h.registry.Search(context.Background(), filters)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": properties})
}

// Create 新建地产记录 (multipart，含图片)
// POST /api/properties
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	name := c.FormValue("name")
	location := c.FormValue("location")
	propertyType := c.FormValue("propertyType")
	propertyStatus := c.FormValue("propertyStatus")

	area, aerr := strconv.ParseFloat(c.FormValue("area"), 64)
	price, perr := strconv.ParseFloat(c.FormValue("price"), 64)
	file, ferr := c.FormFile("image")
	if name == "" || location == "" || propertyType == "" || aerr != nil || perr != nil || ferr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "All fields including image are required"})
	}

	imagePath, err := h.store.Save(c, file)
	if err != nil {
		return RespondError(c, err)
	}

	property, err := h.registry.Create(context.Background(), domain.PropertyFields{
		Name:           name,
		Location:       location,
		Area:           area,
		PropertyType:   propertyType,
		PropertyStatus: propertyStatus,
		Price:          price,
	}, imagePath)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":   "success",
		"message":  "Holder added successfully",
		"holderId": property.ID,
	})
}

// PropertyUpdateRequest 更新地产记录请求，缺省字段保持不变
type PropertyUpdateRequest struct {
	Name     *string  `json:"name"`
	Location *string  `json:"location"`
	Price    *float64 `json:"price"`
}

// Update 更新地产记录
// PUT /api/properties/:id
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid holder ID format"})
	}

	var req PropertyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	property, err := h.registry.Update(context.Background(), id, domain.PropertyUpdate{
		Name:     req.Name,
		Location: req.Location,
		Price:    req.Price,
	})
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Holder updated successfully",
		"data":    property,
	})
}

// Delete 删除地产记录
// DELETE /api/properties/:id
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid holder ID format"})
	}

	if err := h.registry.Delete(context.Background(), id); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Holder deleted successfully"})
}

// LandArea 按持有人姓名查询土地面积
// GET /api/holders/:name/land-area
func (h *PropertyHandler) LandArea(c *fiber.Ctx) error {
	area, err := h.registry.LandArea(context.Background(), c.Params("name"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "area": area})
}

// queryFloat 解析可选的浮点查询参数，缺省返回 nil。
func queryFloat(c *fiber.Ctx, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
