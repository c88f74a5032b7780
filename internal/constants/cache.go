package constants

import "time"

// Redis 缓存键
const (
	// CachePropertyList 登记簿全量列表缓存
	CachePropertyList = "properties:all"
)

// 缓存过期时间
const (
	// CachePropertyListTTL 列表缓存 TTL，任何登记簿写操作都会主动失效
	CachePropertyListTTL = 60 * time.Second
)
