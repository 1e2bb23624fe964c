package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// topicPayload is the bound shape of a topic request.
type topicPayload struct {
	Topic string `json:"topic" validate:"required,topicmax"`
}

// RequestValidator checks inbound topic requests before any model call.
// It is safe for concurrent use.
type RequestValidator struct {
	validate       *govalidator.Validate
	trans          ut.Translator
	maxTopicLength int
}

// NewRequestValidator builds a validator with English messages. A
// maxTopicLength of zero or less disables the length check.
func NewRequestValidator(maxTopicLength int) *RequestValidator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	// Registration only fails for malformed tags, and these are fixed.
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterValidation("topicmax", func(fl govalidator.FieldLevel) bool {
		return maxTopicLength <= 0 || utf8.RuneCountInString(fl.Field().String()) <= maxTopicLength
	})
	_ = v.RegisterTranslation("topicmax", trans,
		func(t ut.Translator) error {
			return t.Add("topicmax", "{0} must be at most {1} characters", false)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			msg, _ := t.T("topicmax", fe.Field(), fmt.Sprint(maxTopicLength))
			return msg
		},
	)

	return &RequestValidator{validate: v, trans: trans, maxTopicLength: maxTopicLength}
}

var defaultValidator = sync.OnceValue(func() *RequestValidator {
	return NewRequestValidator(DefaultMaxTopicLength)
})

// ParseTopicRequest validates raw with the default topic length limit.
func ParseTopicRequest(raw []byte) (TopicRequest, error) {
	req, verr := defaultValidator().Parse(raw)
	if verr != nil {
		return TopicRequest{}, verr
	}
	return req, nil
}

// Parse validates a raw JSON body and returns the trimmed request.
func (rv *RequestValidator) Parse(raw []byte) (TopicRequest, *ValidationError) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return TopicRequest{}, &ValidationError{Fields: []FieldError{
			{Field: "body", Reason: "body must be a JSON object"},
		}}
	}

	var p topicPayload
	if t, ok := obj["topic"]; ok {
		if err := json.Unmarshal(t, &p.Topic); err != nil {
			return TopicRequest{}, &ValidationError{Fields: []FieldError{
				{Field: "topic", Reason: "topic must be a string"},
			}}
		}
	}
	p.Topic = strings.TrimSpace(p.Topic)

	if err := rv.validate.Struct(p); err != nil {
		return TopicRequest{}, rv.translate(err)
	}
	return TopicRequest{Topic: p.Topic}, nil
}

func (rv *RequestValidator) translate(err error) *ValidationError {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: err.Error()}}}
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Reason: fe.Translate(rv.trans)})
	}
	return out
}
