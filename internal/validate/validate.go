// Package validate checks console input before anything is sent to the API.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ngmaloney/vessel-console/internal/coerce"
	"github.com/ngmaloney/vessel-console/internal/models"
)

// use a single instance of Validate, it caches struct info
var inputValidate *validator.Validate

func init() {
	inputValidate = validator.New(validator.WithRequiredStructEnabled())

	inputValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// A date/time in any layout the console accepts
	if err := inputValidate.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, ok := coerce.Timestamp(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}

	if err := inputValidate.RegisterValidation("activityType", func(fl validator.FieldLevel) bool {
		return models.ActivityType(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}

	inputValidate.RegisterStructValidation(activityRules, models.ActivityInput{})
	inputValidate.RegisterStructValidation(voyageRules, models.VoyageInput{})
}

// Error lists every problem found in one input.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return strings.Join(e.Problems, "; ")
}

var labels = map[string]string{
	"type":                 "Activity type",
	"startAt":              "Start",
	"endAt":                "End",
	"remark":               "Remark",
	"fuelUsed":             "Fuel used",
	"reeferCount":          "Reefer count",
	"mainEngineCount":      "Main engine count",
	"mainEngineHours":      "Main engine hours",
	"generatorCount":       "Generator count",
	"generatorHours":       "Generator hours",
	"containerCount":       "Container count",
	"totalContainerWeight": "Total container weight",
	"avgSpeed":             "Average speed",
	"voyNo":                "Voyage no.",
	"postingMonth":         "Posting month",
	"postingYear":          "Posting year",
	"status":               "Status",
	"openingRob":           "Opening ROB",
	"closingRob":           "Closing ROB",
	"unit":                 "Unit",
	"at":                   "Date",
	"amount":               "Amount",
	"name":                 "Name",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "requiredfor":
		return fmt.Sprintf("%s is required for %s", name, models.ActivityType(fe.Param()).Label())
	case "requiredclosed":
		return fmt.Sprintf("%s is required to close a voyage", name)
	case "after":
		return fmt.Sprintf("%s must be after %s", name, strings.ToLower(label(fe.Param())))
	case "timestamp":
		return fmt.Sprintf("%s is not a valid date/time", name)
	case "activityType":
		return fmt.Sprintf("%s %q is not known", name, fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "eq":
		return fmt.Sprintf("%s must be %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", name)
}

func check(v any) error {
	err := inputValidate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, message(fe))
	}
	return &Error{Problems: problems}
}

// endAfterStart reports endAt when both parse and end is not after start.
func endAfterStart(sl validator.StructLevel, start, end string) {
	s, okStart := coerce.Timestamp(start)
	e, okEnd := coerce.Timestamp(end)
	if okStart && okEnd && !e.After(s) {
		sl.ReportError(end, "endAt", "EndAt", "after", "startAt")
	}
}

type requiredNumber struct {
	name  string
	value *float64
}

func activityRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(models.ActivityInput)
	endAfterStart(sl, in.StartAt, in.EndAt)

	switch {
	case in.Type == models.Other:
		if strings.TrimSpace(in.Remark) == "" {
			sl.ReportError(in.Remark, "remark", "Remark", "requiredfor", string(in.Type))
		}
		return
	case !in.Type.Valid():
		return
	}

	required := []requiredNumber{
		{"reeferCount", in.ReeferCount},
		{"mainEngineCount", in.MainEngineCount},
		{"mainEngineHours", in.MainEngineHours},
		{"generatorCount", in.GeneratorCount},
		{"generatorHours", in.GeneratorHours},
	}
	if in.Type.IsCargo() {
		required = append(required,
			requiredNumber{"containerCount", in.ContainerCount},
			requiredNumber{"totalContainerWeight", in.TotalContainerWeight},
		)
	}
	if in.Type == models.FullSpeedAway {
		required = append(required, requiredNumber{"avgSpeed", in.AvgSpeed})
	}

	for _, r := range required {
		if r.value == nil {
			sl.ReportError(r.value, r.name, r.name, "requiredfor", string(in.Type))
		}
	}
}

func voyageRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(models.VoyageInput)
	if in.VoyNo != "" && strings.TrimSpace(in.VoyNo) == "" {
		sl.ReportError(in.VoyNo, "voyNo", "VoyNo", "required", "")
	}

	end := ""
	if in.EndAt != nil {
		end = *in.EndAt
	}
	if end != "" {
		if _, ok := coerce.Timestamp(end); !ok {
			sl.ReportError(end, "endAt", "EndAt", "timestamp", "")
		} else {
			endAfterStart(sl, in.StartAt, end)
		}
	}
	if in.Status.IsClosed() && end == "" {
		sl.ReportError(in.EndAt, "endAt", "EndAt", "requiredclosed", "")
	}
}

// Activity checks the fields each activity type needs. OTHER needs only a
// remark.
func Activity(in models.ActivityInput) error {
	return check(in)
}

// Voyage checks a create or update body.
func Voyage(in models.VoyageInput) error {
	return check(in)
}

// StatusChange checks a status toggle. Closing needs an end timestamp.
func StatusChange(v models.Voyage, next models.VoyageStatus) error {
	if next.IsClosed() && strings.TrimSpace(v.EndAt) == "" {
		return &Error{Problems: []string{"End is required to close a voyage"}}
	}
	return nil
}

// Rob checks that both ROB values are non-negative.
func Rob(in models.RobInput) error {
	return check(in)
}

// Bunker checks that the date is set and the amount is positive.
func Bunker(in models.BunkerInput) error {
	return check(in)
}

func Vessel(in models.VesselInput) error {
	if err := check(in); err != nil {
		return err
	}
	if strings.TrimSpace(in.Name) == "" {
		return &Error{Problems: []string{"Name is required"}}
	}
	return nil
}
