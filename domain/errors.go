package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey 由存储层在唯一键冲突时返回
var ErrDuplicateKey = errors.New("duplicate key")

// ValidationError 必填字段缺失、为空或格式错误
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s: must not be blank", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError 引用的标识符不存在
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound 判断错误链中是否存在 NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
