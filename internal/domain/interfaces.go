package domain

import (
	"context"
	"time"

	"landadmin.com/internal/model"
)

// ===========================
// 账号服务接口
// ===========================

// RegisterRequest 自助注册请求 (holder)
type RegisterRequest struct {
	Name     string
	Password string
	Email    string
	Area     float64
	Location string
}

// AdminRegisterRequest 管理员创建账号请求
type AdminRegisterRequest struct {
	Name        string
	Password    string
	Email       string
	Role        string
	Permissions []string
}

// LoginResult 登录成功后的返回
type LoginResult struct {
	Token string
	User  *model.User
}

// AccountService 定义账号相关的业务操作
type AccountService interface {
	// 自助注册，新账号为 pending，等待审批
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	// 管理员创建账号，直接 approved
	RegisterByAdmin(ctx context.Context, req AdminRegisterRequest) (*model.User, error)
	// 用户名+密码登录
	Login(ctx context.Context, name, password string) (*LoginResult, error)
	// Google ID token 登录，按邮箱查找或创建账号
	GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error)
	// 审批账号 pending -> approved
	Approve(ctx context.Context, userID uint) error
	// 按用户名查询
	GetByName(ctx context.Context, name string) (*model.User, error)
	// 列出所有账号
	List(ctx context.Context) ([]model.User, error)
	// 更新用户名/邮箱
	Update(ctx context.Context, userID uint, name, email string) (*model.User, error)
	// 删除账号
	Delete(ctx context.Context, userID uint) error
}

// ===========================
// 登记簿服务接口
// ===========================

// PropertyFields 新建地产记录的字段
type PropertyFields struct {
	Name           string
	Location       string
	Area           float64
	PropertyType   string
	PropertyStatus string
	Price          float64
}

// PropertyUpdate 更新地产记录的字段，nil 表示不修改
type PropertyUpdate struct {
	Name     *string
	Location *string
	Price    *float64
}

// SearchFilters 地产搜索条件，范围均为闭区间
type SearchFilters struct {
	Location     string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	MinArea      *float64
	MaxArea      *float64
}

// RegistryService 定义地产登记簿的业务操作
type RegistryService interface {
	List(ctx context.Context) ([]model.Property, error)
	Search(ctx context.Context, filters SearchFilters) ([]model.Property, error)
	Create(ctx context.Context, fields PropertyFields, imagePath string) (*model.Property, error)
	Update(ctx context.Context, id uint, update PropertyUpdate) (*model.Property, error)
	Delete(ctx context.Context, id uint) error
	// 按持有人姓名查询土地面积
	LandArea(ctx context.Context, holderName string) (float64, error)
}

// ===========================
// 过户服务接口
// ===========================

// TransferRequest 土地过户请求
type TransferRequest struct {
	OldHolderName   string
	NewHolderName   string
	Area            float64
	Location        string
	TransactionType string
	Price           *float64
	TransactionDate *time.Time
	ImagePath       string // stored upload path, empty when no image was sent
}

// TransferResult 过户完成后的摘要
type TransferResult struct {
	PropertyID    uint
	NewHolderName string
	Location      string
	Area          float64
	Image         string
}

// TransferService 定义土地过户的业务操作
type TransferService interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// ===========================
// 员工/任务服务接口
// ===========================

// EmployeeFields 员工档案字段
type EmployeeFields struct {
	Name        string
	Age         int
	Address     string
	SchoolLevel string
	Gender      string
}

// StaffService 定义员工档案与任务分派的业务操作
type StaffService interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	CreateEmployee(ctx context.Context, fields EmployeeFields) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id uint, fields EmployeeFields) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id uint) error

	ListTasks(ctx context.Context, status string) ([]model.Task, error)
	AddTask(ctx context.Context, taskName, category string, salary float64) (*model.Task, error)
	// 分派任务，仅允许从 unassigned 状态分派
	AssignTask(ctx context.Context, employeeID, taskID uint) error
}

// ===========================
// 支付服务接口
// ===========================

// PaymentService 定义地税支付发起的业务操作
type PaymentService interface {
	// 在网关创建 sale 并落库 pending 记录，返回跳转链接
	Create(ctx context.Context, username string, landArea, taxAmount float64, currency string) (string, *model.Payment, error)
}

// GatewaySale 网关创建成功后的返回
type GatewaySale struct {
	ID          string
	ApprovalURL string
}

// PaymentGateway 定义与支付网关通信的接口
type PaymentGateway interface {
	CreateSale(ctx context.Context, amount float64, currency, description string) (*GatewaySale, error)
}

// ===========================
// 通知服务接口
// ===========================

// NotificationService 定义注册通知日志的业务操作
type NotificationService interface {
	Create(ctx context.Context, typ, name, email, userType, status string) (*model.SignupNotification, error)
	// 仅返回待审批的通知
	ListPending(ctx context.Context) ([]model.SignupNotification, error)
	// 管理员标记 approved/rejected
	Review(ctx context.Context, id uint, status, rejectionReason string) (*model.SignupNotification, error)
}

// ===========================
// 外部身份校验接口
// ===========================

// IdentityClaims OAuth ID token 中提取的身份信息
type IdentityClaims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// TokenVerifier 定义 OAuth ID token 校验的接口
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}

// ===========================
// WebSocket 推送接口
// ===========================

// Notifier 定义推送通知的接口
type Notifier interface {
	// 广播消息给所有连接的客户端 (管理端通知面板)
	BroadcastToAll(data interface{})
}
