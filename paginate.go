package resource

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var paginateValidator = validator.New()

// Paginate 分页请求，偏移量加窗口大小
type Paginate struct {
	Offset int64 `cfg:"offset" def:"0" validate:"gte=0" json:"offset"`
	Limit  int64 `cfg:"limit" def:"20" validate:"gt=0" json:"limit"`
}

func (p *Paginate) Validate() error {
	if err := paginateValidator.Struct(p); err != nil {
		return errors.WithMessage(ErrInvalidCondition, err.Error())
	}
	return nil
}
