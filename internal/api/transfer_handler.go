package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/infra"
)

// TransferHandler 处理土地过户相关的 HTTP 请求
type TransferHandler struct {
	transfers domain.TransferService
	store     *infra.ImageStore
}

// NewTransferHandler 创建过户处理器
func NewTransferHandler(transfers domain.TransferService, store *infra.ImageStore) *TransferHandler {
	return &TransferHandler{transfers: transfers, store: store}
}

// Transfer 执行土地过户 (multipart，Buy 交易必须带图片)
// POST /api/transfers
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	oldHolderName := c.FormValue("oldHolderName")
	newHolderName := c.FormValue("newHolderName")
	location := c.FormValue("location")
	transactionType := c.FormValue("transactionType")

	area, aerr := strconv.ParseFloat(c.FormValue("area"), 64)
	if oldHolderName == "" || newHolderName == "" || location == "" || transactionType == "" || aerr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "All required fields must be provided"})
	}

	// 校验先于落盘，Buy 缺图时不产生任何写入（包括孤儿文件）
	file, ferr := c.FormFile("image")
	if transactionType == "Buy" && ferr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Image is required for Buy transactions"})
	}

	var price *float64
	if raw := c.FormValue("price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid price"})
		}
		price = &v
	}

	var transactionDate *time.Time
	if raw := c.FormValue("transactionDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid transaction date"})
		}
		transactionDate = &t
	}

	imagePath := ""
	if ferr == nil {
		var err error
		if imagePath, err = h.store.Save(c, file); err != nil {
			return RespondError(c, err)
		}
	}

	result, err := h.transfers.Transfer(context.Background(), domain.TransferRequest{
		OldHolderName:   oldHolderName,
		NewHolderName:   newHolderName,
		Area:            area,
		Location:        location,
		TransactionType: transactionType,
		Price:           price,
		TransactionDate: transactionDate,
		ImagePath:       imagePath,
	})
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Land transferred successfully",
		"data": fiber.Map{
			"holderId":        result.PropertyID,
			"newHolderName":   result.NewHolderName,
			"location":        result.Location,
			"area":            result.Area,
			"transactionType": transactionType,
			"image":           h.store.ResolveURL(result.Image),
		},
	})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
