// Package form 定义公开页面提交的表单及其校验规则。
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Errors 以字段名为键保存第一条校验错误。
type Errors map[string]string

// Has 判断字段是否有错误。
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get 返回字段的错误信息，没有错误时为空串。
func (e Errors) Get(field string) string {
	return e[field]
}

// Valid 判断是否没有任何错误。
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Cleaner 在校验前规范化字段值。
type Cleaner interface {
	Clean()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(field.Name)
		}
		return name
	})
	return v
}

// Validate 先调用 Clean 再按 validate 标签校验，返回字段错误；校验通过时返回 nil。
func Validate(v any) Errors {
	if c, ok := v.(Cleaner); ok {
		c.Clean()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"__all__": err.Error()}
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		length := 0
		if s, ok := fe.Value().(string); ok {
			length = utf8.RuneCountInString(s)
		}
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), length)
	default:
		return "Enter a valid value."
	}
}

// CommentForm 是文章评论表单。
type CommentForm struct {
	Name  string `form:"name"  json:"name"  validate:"required,max=80"`
	Email string `form:"email" json:"email" validate:"required,max=254,email"`
	Body  string `form:"body"  json:"body"  validate:"required"`
}

func (f *CommentForm) Clean() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Body = strings.TrimSpace(f.Body)
}

// ShareForm 是通过邮件推荐文章的表单。
type ShareForm struct {
	Name     string `form:"name"     json:"name"     validate:"required,max=25"`
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	To       string `form:"to"       json:"to"       validate:"required,email"`
	Comments string `form:"comments" json:"comments"`
}

func (f *ShareForm) Clean() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.To = strings.TrimSpace(f.To)
	f.Comments = strings.TrimSpace(f.Comments)
}

// SearchForm 是全文搜索表单。
type SearchForm struct {
	Query string `form:"query" json:"query" validate:"required,max=255"`
}

func (f *SearchForm) Clean() {
	f.Query = strings.TrimSpace(f.Query)
}
