package validator

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe     = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	classRe    = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)
)

// BusinessValidator handles domain rule validation for every write request.
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerDomainRules()

	return bv
}

// Validate validates domain rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateAttendanceSave validates a bulk save batch. Strict mode: any bad
// record rejects the whole batch before a single row is written.
func (bv *BusinessValidator) ValidateAttendanceSave(records []AttendanceRecordRequest) ValidationErrors {
	var errors ValidationErrors

	if len(records) == 0 {
		errors = append(errors, ValidationError{
			Field:   "records",
			Message: "at least one attendance record is required",
			Rule:    "required",
		})
		return errors
	}

	seen := make(map[string]int, len(records))
	for i, rec := range records {
		for _, fieldErr := range bv.Validate(&rec) {
			fieldErr.Field = fmt.Sprintf("records[%d].%s", i, fieldErr.Field)
			errors = append(errors, fieldErr)
		}

		key := fmt.Sprintf("%d|%s", rec.StudentID, rec.Date)
		if first, dup := seen[key]; dup {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("records[%d]", i),
				Message: fmt.Sprintf("duplicates records[%d] for the same student and date", first),
				Rule:    "unique_student_date",
			})
		} else {
			seen[key] = i
		}
	}

	return errors
}

// ValidateDateRange checks that both bounds parse and start does not follow end.
func (bv *BusinessValidator) ValidateDateRange(startDate, endDate string) ValidationErrors {
	var errors ValidationErrors

	start, err := parseDate(startDate)
	if err != nil {
		errors = append(errors, ValidationError{
			Field:   "start_date",
			Message: "must be a valid date in YYYY-MM-DD format",
			Value:   startDate,
			Rule:    "date_format",
		})
	}

	end, err := parseDate(endDate)
	if err != nil {
		errors = append(errors, ValidationError{
			Field:   "end_date",
			Message: "must be a valid date in YYYY-MM-DD format",
			Value:   endDate,
			Rule:    "date_format",
		})
	}

	if len(errors) == 0 && start.After(end) {
		errors = append(errors, ValidationError{
			Field:   "start_date",
			Message: "must not be after end_date",
			Value:   startDate,
			Rule:    "date_range",
		})
	}

	return errors
}

// ValidateDate checks a single path-segment date.
func (bv *BusinessValidator) ValidateDate(field, value string) ValidationErrors {
	if _, err := parseDate(value); err != nil {
		return ValidationErrors{{
			Field:   field,
			Message: "must be a valid date in YYYY-MM-DD format",
			Value:   value,
			Rule:    "date_format",
		}}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date format: %q", s)
	}
	return time.Parse("2006-01-02", s)
}

// registerDomainRules registers custom rule validators
func (bv *BusinessValidator) registerDomainRules() {
	// Person names (students, teachers): 2-100 characters
	bv.validate.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return len(name) >= 2 && len(name) <= 100
	})

	// Calendar date in YYYY-MM-DD
	bv.validate.RegisterValidation("date_format", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})

	// Clock time in HH:MM:SS
	bv.validate.RegisterValidation("time_format", func(fl validator.FieldLevel) bool {
		return timeRe.MatchString(fl.Field().String())
	})

	// Birth date must put the student between 3 and 30 years old
	bv.validate.RegisterValidation("student_birth_date", func(fl validator.FieldLevel) bool {
		birth, err := parseDate(fl.Field().String())
		if err != nil {
			return false
		}
		now := time.Now()
		if birth.After(now) {
			return false
		}
		age := now.Year() - birth.Year()
		if now.YearDay() < birth.YearDay() {
			age--
		}
		return age >= 3 && age <= 30
	})

	// Student gender enum (lowercase)
	bv.validate.RegisterValidation("student_gender", func(fl validator.FieldLevel) bool {
		gender := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		return gender == "male" || gender == "female"
	})

	// Teacher gender enum (proper case)
	bv.validate.RegisterValidation("teacher_gender", func(fl validator.FieldLevel) bool {
		gender := strings.TrimSpace(fl.Field().String())
		return gender == "Male" || gender == "Female"
	})

	// Role enum
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := strings.TrimSpace(fl.Field().String())
		return role == "Admin" || role == "Teacher" || role == "Student"
	})

	// Username: 3-50 chars, letters/numbers/underscores
	bv.validate.RegisterValidation("username_format", func(fl validator.FieldLevel) bool {
		username := strings.TrimSpace(fl.Field().String())
		if len(username) < 3 || len(username) > 50 {
			return false
		}
		return usernameRe.MatchString(username)
	})

	// Password strength: >=8 chars with upper, lower and digit
	bv.validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		if len(password) < 8 {
			return false
		}
		var hasUpper, hasLower, hasDigit bool
		for _, r := range password {
			switch {
			case r >= 'A' && r <= 'Z':
				hasUpper = true
			case r >= 'a' && r <= 'z':
				hasLower = true
			case r >= '0' && r <= '9':
				hasDigit = true
			}
		}
		return hasUpper && hasLower && hasDigit
	})

	// Class name: 1-10 chars, alphanumeric plus spaces and hyphens
	bv.validate.RegisterValidation("class_name", func(fl validator.FieldLevel) bool {
		class := strings.TrimSpace(fl.Field().String())
		if len(class) < 1 || len(class) > 10 {
			return false
		}
		return classRe.MatchString(class)
	})

	// Service type: 2-100 characters
	bv.validate.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		service := strings.TrimSpace(fl.Field().String())
		return len(service) >= 2 && len(service) <= 100
	})

	// Amount: positive, at most two decimal places, fits decimal(10,2).
	// The cent count is compared after rounding so amounts whose binary
	// representation lands just under the integer (0.29, 4.35) still pass.
	bv.validate.RegisterValidation("payment_amount", func(fl validator.FieldLevel) bool {
		amount := fl.Field().Float()
		if amount <= 0 || amount > 99999999.99 {
			return false
		}
		cents := amount * 100
		return math.Abs(cents-math.Round(cents)) < 1e-6
	})
}

// errorMessage returns user-friendly error messages
func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "person_name":
		return "must be between 2 and 100 characters"
	case "date_format":
		return "must be a valid date in YYYY-MM-DD format"
	case "time_format":
		return "must be a valid time in HH:MM:SS format"
	case "student_birth_date":
		return "must put the student between 3 and 30 years of age"
	case "student_gender":
		return "must be either \"male\" or \"female\""
	case "teacher_gender":
		return "must be either \"Male\" or \"Female\""
	case "user_role":
		return "must be one of: Admin, Teacher, Student"
	case "username_format":
		return "must be between 3 and 50 characters and contain only letters, numbers, and underscores"
	case "password_strength":
		return "must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one number"
	case "class_name":
		return "must be between 1 and 10 characters (letters, numbers, spaces, hyphens)"
	case "service_type":
		return "must be between 2 and 100 characters"
	case "payment_amount":
		return "must be a positive amount up to 99999999.99 with at most two decimal places"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
