package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"landadmin.com/internal/constants"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/infra"
	"landadmin.com/internal/model"
)

// TransferServiceImpl 实现 domain.TransferService 接口。
// 过户涉及登记簿和账号两张表，整个流程跑在一个数据库事务里，
// 任何一步失败都不会留下半完成状态（如已建新买家、地产未过户）。
type TransferServiceImpl struct {
	db  *gorm.DB
	rdb *redis.Client // optional, invalidates the registry list cache
}

// NewTransferService 创建过户服务
func NewTransferService(db *gorm.DB, rdb *redis.Client) *TransferServiceImpl {
	return &TransferServiceImpl{db: db, rdb: rdb}
}

// Transfer 执行土地过户:
//  1. 按 (姓名, 位置, 面积) 精确定位地产记录
//  2. 未登记的卖家若存在账号，则为其补建登记簿记录
//  3. 买家无账号时创建 pending 占位账号
//  4. 地产记录改写为新持有人
func (s *TransferServiceImpl) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	req.OldHolderName = strings.TrimSpace(req.OldHolderName)
	req.NewHolderName = strings.TrimSpace(req.NewHolderName)
	req.Location = strings.TrimSpace(req.Location)

	if req.OldHolderName == "" || req.NewHolderName == "" || req.Location == "" ||
		req.TransactionType == "" || req.Area <= 0 {
		return nil, domain.NewBadRequestError("All required fields must be provided")
	}
	if req.TransactionType == "Buy" && req.ImagePath == "" {
		return nil, domain.NewBadRequestError("Image is required for Buy transactions")
	}

	var result domain.TransferResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. 定位地产记录
		var property model.Property
		err := tx.Where("name = ? AND location = ? AND area = ?",
			req.OldHolderName, req.Location, req.Area).First(&property).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 2. 卖家未登记：账号存在则补建记录，否则 404
			var oldHolder model.User
			if uerr := tx.Where("name = ?", req.OldHolderName).First(&oldHolder).Error; uerr != nil {
				return domain.NewNotFoundError("Old holder not found in registered holders or users")
			}

			price := 0.0
			if req.Price != nil {
				price = *req.Price
			}
			property = model.Property{
				Name:           req.OldHolderName,
				Location:       req.Location,
				Area:           req.Area,
				PropertyType:   model.PropertyTypeResidential,
				PropertyStatus: model.PropertyStatusAvailable,
				Price:          price,
				Image:          req.ImagePath,
			}
			if cerr := tx.Create(&property).Error; cerr != nil {
				return domain.NewInternalError("failed to register unlisted holder", cerr)
			}
		} else if err != nil {
			return domain.NewInternalError("failed to look up property", err)
		}

		// 3. 买家无账号时创建 pending 占位账号
		var newHolder model.User
		err = tx.Where("name = ?", req.NewHolderName).First(&newHolder).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hashed, herr := bcrypt.GenerateFromPassword([]byte("default_password"), bcrypt.DefaultCost)
			if herr != nil {
				return domain.NewInternalError("failed to hash password", herr)
			}
			newHolder = model.User{
				Name:     req.NewHolderName,
				Email:    placeholderEmail(req.NewHolderName),
				Password: string(hashed),
				Role:     model.RoleHolder,
				Status:   model.StatusPending, // 新持有人仍需审批
			}
			if cerr := tx.Create(&newHolder).Error; cerr != nil {
				return domain.NewInternalError("failed to create holder account", cerr)
			}
		} else if err != nil {
			return domain.NewInternalError("failed to look up new holder", err)
		}

		// 4. 改写持有人
		property.Name = req.NewHolderName
		if req.Price != nil {
			property.Price = *req.Price
		}
		if req.ImagePath != "" {
			property.Image = req.ImagePath
		}
		if serr := tx.Save(&property).Error; serr != nil {
			return domain.NewInternalError("failed to transfer land", serr)
		}
		if req.TransactionDate != nil {
			if uerr := tx.Model(&property).UpdateColumn("updated_at", *req.TransactionDate).Error; uerr != nil {
				return domain.NewInternalError("failed to record transaction date", uerr)
			}
		}

		result = domain.TransferResult{
			PropertyID:    property.ID,
			NewHolderName: req.NewHolderName,
			Location:      req.Location,
			Area:          req.Area,
			Image:         property.Image,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if cerr := infra.DeleteCache(ctx, s.rdb, constants.CachePropertyList); cerr != nil {
			log.Printf("TransferService: cache invalidation failed: %v", cerr)
		}
	}

	log.Printf("TransferService: property %d transferred %s -> %s",
		result.PropertyID, req.OldHolderName, req.NewHolderName)
	return &result, nil
}

// placeholderEmail 为过户时创建的占位账号合成邮箱。
func placeholderEmail(name string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), ""))
	return normalized + "@example.com"
}
