package util

import (
	"time"

	"smartenglish_backend/internal/progress"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators 注册表单用到的自定义校验标签
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"datefmt": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateFormat, fl.Field().String())
			return err == nil
		},
		"monthfmt": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(MonthFormat, fl.Field().String())
			return err == nil
		},
		"timespent": func(fl validator.FieldLevel) bool {
			return progress.IsTimeSpent(fl.Field().String())
		},
		"exprbucket": func(fl validator.FieldLevel) bool {
			return progress.IsExpressionBucket(fl.Field().String())
		},
		"activity": func(fl validator.FieldLevel) bool {
			return progress.IsActivity(fl.Field().String())
		},
		"difficulty": func(fl validator.FieldLevel) bool {
			return progress.IsDifficulty(fl.Field().String())
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
