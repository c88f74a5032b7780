package service

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"landadmin.com/internal/constants"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/infra"
	"landadmin.com/internal/model"
)

// RegistryServiceImpl 实现 domain.RegistryService 接口
type RegistryServiceImpl struct {
	db    *gorm.DB
	rdb   *redis.Client // optional, list cache
	store *infra.ImageStore
}

// NewRegistryService 创建登记簿服务
func NewRegistryService(db *gorm.DB, rdb *redis.Client, store *infra.ImageStore) *RegistryServiceImpl {
	return &RegistryServiceImpl{db: db, rdb: rdb, store: store}
}

// List 返回全部地产记录，图片路径物化为绝对 URL。
// 列表走 Redis 读穿缓存，写操作主动失效。
func (s *RegistryServiceImpl) List(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property

	if s.rdb != nil {
		hit, err := infra.GetCache(ctx, s.rdb, constants.CachePropertyList, &properties)
		if err != nil {
			log.Printf("RegistryService: cache read failed: %v", err)
		} else if hit {
			return s.materialize(properties), nil
		}
	}

	if err := s.db.Find(&properties).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch holders", err)
	}
	if len(properties) == 0 {
		return nil, domain.NewNotFoundError("No holders found")
	}

	if s.rdb != nil {
		if err := infra.SetCache(ctx, s.rdb, constants.CachePropertyList, properties, constants.CachePropertyListTTL); err != nil {
			log.Printf("RegistryService: cache write failed: %v", err)
		}
	}

	return s.materialize(properties), nil
}

// Search 按条件检索，价格/面积为闭区间。
func (s *RegistryServiceImpl) Search(ctx context.Context, filters domain.SearchFilters) ([]model.Property, error) {
	query := s.db.Model(&model.Property{})

	if filters.Location != "" {
		query = query.Where("location LIKE ?", "%"+filters.Location+"%")
	}
	if filters.PropertyType != "" {
		query = query.Where("property_type = ?", filters.PropertyType)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.MinArea != nil {
		query = query.Where("area >= ?", *filters.MinArea)
	}
	if filters.MaxArea != nil {
		query = query.Where("area <= ?", *filters.MaxArea)
	}

	var properties []model.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, domain.NewInternalError("failed to search properties", err)
	}
	if len(properties) == 0 {
		return nil, domain.NewNotFoundError("No properties found matching your criteria")
	}

	return s.materialize(properties), nil
}

// Create 新建地产记录，所有字段和图片必填。
func (s *RegistryServiceImpl) Create(ctx context.Context, fields domain.PropertyFields, imagePath string) (*model.Property, error) {
	if fields.Name == "" || fields.Location == "" || fields.PropertyType == "" || imagePath == "" {
		return nil, domain.NewBadRequestError("All fields including image are required")
	}
	if !model.ValidPropertyType(fields.PropertyType) {
		return nil, domain.NewBadRequestError("Invalid property type")
	}
	if fields.Area < 0 || fields.Price < 0 {
		return nil, domain.NewBadRequestError("Area and price cannot be negative")
	}

	status := fields.PropertyStatus
	if status == "" {
		status = model.PropertyStatusAvailable
	}

	property := model.Property{
		Name:           fields.Name,
		Location:       fields.Location,
		Area:           fields.Area,
		PropertyType:   fields.PropertyType,
		PropertyStatus: status,
		Price:          fields.Price,
		Image:          imagePath,
	}
	if err := s.db.Create(&property).Error; err != nil {
		return nil, domain.NewInternalError("failed to add holder", err)
	}

	s.invalidateCache(ctx)
	log.Printf("RegistryService: property %d registered for %s", property.ID, property.Name)
	return &property, nil
}

// Update 更新地产记录，nil 字段保持不变。
func (s *RegistryServiceImpl) Update(ctx context.Context, id uint, update domain.PropertyUpdate) (*model.Property, error) {
	var property model.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return nil, domain.NewNotFoundError("Holder not found")
	}

	if update.Name != nil {
		property.Name = *update.Name
	}
	if update.Location != nil {
		property.Location = *update.Location
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, domain.NewBadRequestError("Price cannot be negative")
		}
		property.Price = *update.Price
	}

	if err := s.db.Save(&property).Error; err != nil {
		return nil, domain.NewInternalError("failed to update holder", err)
	}

	s.invalidateCache(ctx)
	return &property, nil
}

// Delete 删除地产记录并清理磁盘上的图片。
func (s *RegistryServiceImpl) Delete(ctx context.Context, id uint) error {
	var property model.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return domain.NewNotFoundError("Holder not found")
	}

	if err := s.db.Delete(&property).Error; err != nil {
		return domain.NewInternalError("failed to delete holder", err)
	}

	if s.store != nil && property.Image != "" {
		if err := s.store.Remove(property.Image); err != nil {
			log.Printf("RegistryService: failed to remove image %s: %v", property.Image, err)
		}
	}

	s.invalidateCache(ctx)
	return nil
}

// LandArea 按持有人姓名查询土地面积。
func (s *RegistryServiceImpl) LandArea(ctx context.Context, holderName string) (float64, error) {
	var property model.Property
	if err := s.db.Where("name = ?", holderName).First(&property).Error; err != nil {
		return 0, domain.NewNotFoundError("Holder not found")
	}
	return property.Area, nil
}

func (s *RegistryServiceImpl) materialize(properties []model.Property) []model.Property {
	if s.store == nil {
		return properties
	}
	for i := range properties {
		properties[i].Image = s.store.ResolveURL(properties[i].Image)
	}
	return properties
}

func (s *RegistryServiceImpl) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := infra.DeleteCache(ctx, s.rdb, constants.CachePropertyList); err != nil {
		log.Printf("RegistryService: cache invalidation failed: %v", err)
	}
}
