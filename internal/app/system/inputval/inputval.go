// internal/app/system/inputval/inputval.go

// Package inputval validates request input structs before they reach stores.
//
// Rules are declared with struct tags:
//
//	type CreateGroupInput struct {
//	    Name        string `validate:"required,max=100" label:"Group name"`
//	    MaxMembers  int    `validate:"min=2,max=500" label:"Member limit"`
//	    MessageType string `validate:"messagetype" label:"Message type"`
//	}
//
// Supported rules: required, min=N, max=N (rune length for strings, value
// bounds for ints), email, httpurl, objectid, messagetype, grouprole.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/voyagehq/voyagehub/internal/domain/models"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures in declaration order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first failure message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every failure message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate runs the tag rules on every exported field of the struct v
// (or pointer to struct). Fields without a validate tag are skipped.
func Validate(v any) *Result {
	res := &Result{}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return res
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}
		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		validateField(res, field.Name, label, rv.Field(i), strings.Split(tag, ","))
	}
	return res
}

func validateField(res *Result, name, label string, v reflect.Value, rules []string) {
	add := func(msg string) {
		res.Errors = append(res.Errors, FieldError{Field: name, Message: msg})
	}

	for _, rule := range rules {
		switch {
		case rule == "required":
			if isZero(v) {
				add(fmt.Sprintf("%s is required.", label))
				return // remaining rules are noise on an empty value
			}
		case strings.HasPrefix(rule, "min="):
			n, _ := strconv.Atoi(strings.TrimPrefix(rule, "min="))
			if v.Kind() == reflect.String {
				if s := v.String(); s != "" && utf8.RuneCountInString(s) < n {
					add(fmt.Sprintf("%s must be at least %d characters.", label, n))
				}
			} else if isInt(v) && v.Int() < int64(n) {
				add(fmt.Sprintf("%s must be at least %d.", label, n))
			}
		case strings.HasPrefix(rule, "max="):
			n, _ := strconv.Atoi(strings.TrimPrefix(rule, "max="))
			if v.Kind() == reflect.String {
				if utf8.RuneCountInString(v.String()) > n {
					add(fmt.Sprintf("%s must be at most %d characters.", label, n))
				}
			} else if isInt(v) && v.Int() > int64(n) {
				add(fmt.Sprintf("%s must be at most %d.", label, n))
			}
		case rule == "email":
			if !IsValidEmail(v.String()) {
				add("A valid email address is required.")
			}
		case rule == "httpurl":
			if !IsValidHTTPURL(v.String()) {
				add(fmt.Sprintf("%s must be a valid http(s) URL.", label))
			}
		case rule == "objectid":
			if !IsValidObjectID(v.String()) {
				add(fmt.Sprintf("%s must be a valid ID.", label))
			}
		case rule == "messagetype":
			if s := v.String(); s != "" && !models.IsValidMessageType(s) {
				add(fmt.Sprintf("%s must be one of: text, image, system.", label))
			}
		case rule == "grouprole":
			if s := v.String(); s != "" && !models.IsValidGroupRole(s) {
				add(fmt.Sprintf("%s must be one of: member, moderator, admin.", label))
			}
		}
	}
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	default:
		return v.IsZero()
	}
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
