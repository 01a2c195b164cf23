package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 注意：空目录、冷启动、失效引用这类情况不是错误，引擎对它们返回显式的
// 哨兵结果（空模型 / 冷启动画像 / 跳过）。DomainError 只用于真正的契约
// 违反（维度不匹配、存储不可用等），它们中断单次请求，不污染共享状态。
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "DIMENSION_MISMATCH"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "model", "engine"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"           // 资源不存在
	ErrorCodeNotSupported      = "NOT_SUPPORTED"       // 操作不支持
	ErrorCodeInvalidInput      = "INVALID_INPUT"       // 输入无效
	ErrorCodeDimensionMismatch = "DIMENSION_MISMATCH"  // 画像与模型向量空间不匹配
	ErrorCodeInternalError     = "INTERNAL_ERROR"      // 内部错误
)

// 模块名称常量
const (
	ModuleStore  = "store"  // 存储模块
	ModuleModel  = "model"  // 向量模型模块
	ModuleEngine = "engine" // 推荐引擎模块
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsDimensionMismatch 检查错误是否为画像/模型维度不匹配
func IsDimensionMismatch(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeDimensionMismatch
	}
	return false
}
