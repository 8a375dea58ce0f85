package member

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

var (
	monthsRequiredTag  = "monthsrequired"
	monthsRequiredText = "this field is required unless status is trial"

	joiningDateTag  = "joiningdate"
	joiningDateText = "must be a date formatted as YYYY-MM-DD or an RFC3339 timestamp"
)

// InitValidators registers the member struct validations and their messages.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(memberStructValidation, NewMember{}, UpdateMember{})
	core.RegisterCustomTranslation(validate, translator, monthsRequiredTag, monthsRequiredText)
	core.RegisterCustomTranslation(validate, translator, joiningDateTag, joiningDateText)
}

// memberStructValidation does struct level validation on NewMember and UpdateMember structs.
func memberStructValidation(sl validator.StructLevel) {
	switch m := sl.Current().Interface().(type) {
	case NewMember:
		if m.Status != StatusTrial && m.MonthsOfSubscription == nil {
			sl.ReportError(m.MonthsOfSubscription, "monthsOfSubscription", "MonthsOfSubscription", monthsRequiredTag, "")
		}
		if m.JoiningDate != "" {
			checkJoiningDate(sl, m.JoiningDate)
		}
	case UpdateMember:
		if m.JoiningDate != nil {
			checkJoiningDate(sl, *m.JoiningDate)
		}
	}
}

func checkJoiningDate(sl validator.StructLevel, raw string) {
	if _, err := core.ParseDate(raw); err != nil {
		sl.ReportError(raw, "joiningDate", "JoiningDate", joiningDateTag, "")
	}
}

// checkSubscription enforces the months requirement on a merged Member.
func checkSubscription(m Member) error {
	if m.Status != StatusTrial && m.MonthsOfSubscription == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "monthsOfSubscription", Error: monthsRequiredText})
	}
	return nil
}
