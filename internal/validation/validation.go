// Package validation holds the form rules shared by the web handlers and
// the workflows, and registers them as validator tags on gin's binding
// engine.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"

	firstSlotHour = 6
	lastSlotHour  = 21
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)

	CourseLevels = []string{"Beginner", "Intermediate", "Advanced", "All Levels"}

	registerOnce sync.Once
)

// Slots lists the bookable times, one per hour from 06:00 to 21:00.
func Slots() []string {
	out := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}

func IsSlot(s string) bool {
	for _, slot := range Slots() {
		if slot == s {
			return true
		}
	}
	return false
}

func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func IsCourseLevel(s string) bool {
	for _, l := range CourseLevels {
		if l == s {
			return true
		}
	}
	return false
}

// Register installs the custom tags and json field naming on gin's
// validator. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		v.RegisterValidation("phone", stringRule(IsPhone))
		v.RegisterValidation("slot_time", stringRule(IsSlot))
		v.RegisterValidation("course_level", stringRule(IsCourseLevel))
		v.RegisterValidation("date", stringRule(IsDate))
	})
}

func stringRule(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}
}
