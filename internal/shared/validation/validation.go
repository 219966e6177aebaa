// Package validation registers the request rules shared by the HTTP handlers
// on gin's validator engine.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var employeeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var once sync.Once

// Init must run before any request is bound. Safe to call more than once.
func Init() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		Register(v)
	})
}

// Register installs json field naming and the custom tags on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("employee_id", func(fl validator.FieldLevel) bool {
		return IsEmployeeID(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// IsEmployeeID reports whether s is a well formed business key.
func IsEmployeeID(s string) bool {
	return employeeIDPattern.MatchString(s)
}
