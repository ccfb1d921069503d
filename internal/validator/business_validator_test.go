package validator

import (
	"testing"
)

func validRecord() AttendanceRecordRequest {
	return AttendanceRecordRequest{
		StudentID:      1,
		Date:           "2026-03-02",
		Present:        true,
		AttendanceTime: "08:15:00",
		MarkedBy:       "Jane Smith",
	}
}

func hasRule(errs ValidationErrors, rule string) bool {
	for _, e := range errs {
		if e.Rule == rule {
			return true
		}
	}
	return false
}

func TestStudentCreateValidation(t *testing.T) {
	bv := NewBusinessValidator()

	cases := []struct {
		name    string
		req     StudentCreateRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  StudentCreateRequest{StudentName: "Alice Brown", BirthDate: "2015-04-01", Gender: "female", ClassID: "1A"},
		},
		{
			name:    "name too short",
			req:     StudentCreateRequest{StudentName: "A", BirthDate: "2015-04-01", Gender: "female", ClassID: "1A"},
			wantErr: "person_name",
		},
		{
			name:    "bad date format",
			req:     StudentCreateRequest{StudentName: "Alice Brown", BirthDate: "01/04/2015", Gender: "female", ClassID: "1A"},
			wantErr: "date_format",
		},
		{
			name:    "future birth date",
			req:     StudentCreateRequest{StudentName: "Alice Brown", BirthDate: "2099-01-01", Gender: "female", ClassID: "1A"},
			wantErr: "student_birth_date",
		},
		{
			name:    "too old",
			req:     StudentCreateRequest{StudentName: "Alice Brown", BirthDate: "1980-01-01", Gender: "female", ClassID: "1A"},
			wantErr: "student_birth_date",
		},
		{
			name:    "bad gender",
			req:     StudentCreateRequest{StudentName: "Alice Brown", BirthDate: "2015-04-01", Gender: "unknown", ClassID: "1A"},
			wantErr: "student_gender",
		},
		{
			name:    "missing class",
			req:     StudentCreateRequest{StudentName: "Alice Brown", BirthDate: "2015-04-01", Gender: "female"},
			wantErr: "required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := bv.Validate(&tc.req)
			if tc.wantErr == "" {
				if len(errs) > 0 {
					t.Errorf("expected no errors, got %+v", errs)
				}
				return
			}
			if !hasRule(errs, tc.wantErr) {
				t.Errorf("expected %s violation, got %+v", tc.wantErr, errs)
			}
		})
	}
}

func TestTeacherGenderIsProperCased(t *testing.T) {
	bv := NewBusinessValidator()

	req := TeacherCreateRequest{TeacherName: "Jane Smith", ClassName: "1A", Gender: "Male"}
	if errs := bv.Validate(&req); len(errs) > 0 {
		t.Errorf("expected proper-cased gender to pass, got %+v", errs)
	}

	req.Gender = "male"
	if errs := bv.Validate(&req); !hasRule(errs, "teacher_gender") {
		t.Errorf("expected lowercase gender to fail, got %+v", errs)
	}
}

func TestPaymentAmountValidation(t *testing.T) {
	bv := NewBusinessValidator()

	base := PaymentCreateRequest{
		StudentID:   1,
		ServiceType: "Tuition",
		PaymentDate: "2026-03-02",
		PaymentTime: "09:00:00",
	}

	cases := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"whole amount", 150, true},
		{"two decimals", 99.95, true},
		{"cents below float integer", 0.29, true},
		{"cents below float integer again", 0.58, true},
		{"dollars and cents below float integer", 4.35, true},
		{"negative", -5, false},
		{"zero", 0, false},
		{"three decimals", 10.999, false},
		{"over column limit", 100000000, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			req.Amount = tc.amount
			errs := bv.Validate(&req)
			if tc.valid && len(errs) > 0 {
				t.Errorf("expected %v to pass, got %+v", tc.amount, errs)
			}
			if !tc.valid && len(errs) == 0 {
				t.Errorf("expected %v to fail", tc.amount)
			}
		})
	}
}

func TestUserCreateValidation(t *testing.T) {
	bv := NewBusinessValidator()

	cases := []struct {
		name    string
		req     UserCreateRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  UserCreateRequest{Username: "jsmith_01", Password: "Secret123", Role: "Admin"},
		},
		{
			name:    "username too short",
			req:     UserCreateRequest{Username: "js", Password: "Secret123", Role: "Admin"},
			wantErr: "username_format",
		},
		{
			name:    "username with spaces",
			req:     UserCreateRequest{Username: "j smith", Password: "Secret123", Role: "Admin"},
			wantErr: "username_format",
		},
		{
			name:    "unknown role",
			req:     UserCreateRequest{Username: "jsmith", Password: "Secret123", Role: "Root"},
			wantErr: "user_role",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := bv.Validate(&tc.req)
			if tc.wantErr == "" {
				if len(errs) > 0 {
					t.Errorf("expected no errors, got %+v", errs)
				}
				return
			}
			if !hasRule(errs, tc.wantErr) {
				t.Errorf("expected %s violation, got %+v", tc.wantErr, errs)
			}
		})
	}
}

func TestValidateAttendanceSave(t *testing.T) {
	bv := NewBusinessValidator()

	t.Run("valid batch", func(t *testing.T) {
		second := validRecord()
		second.StudentID = 2
		if errs := bv.ValidateAttendanceSave([]AttendanceRecordRequest{validRecord(), second}); len(errs) > 0 {
			t.Errorf("expected no errors, got %+v", errs)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		errs := bv.ValidateAttendanceSave(nil)
		if len(errs) != 1 || errs[0].Rule != "required" {
			t.Errorf("expected one required error, got %+v", errs)
		}
	})

	t.Run("field errors carry record index", func(t *testing.T) {
		bad := validRecord()
		bad.AttendanceTime = "25:99:00"
		errs := bv.ValidateAttendanceSave([]AttendanceRecordRequest{validRecord(), bad})
		if len(errs) == 0 {
			t.Fatalf("expected errors for bad record")
		}
		if errs[0].Field != "records[1].AttendanceTime" {
			t.Errorf("expected indexed field name, got %q", errs[0].Field)
		}
	})

	t.Run("duplicate student and date", func(t *testing.T) {
		errs := bv.ValidateAttendanceSave([]AttendanceRecordRequest{validRecord(), validRecord()})
		if !hasRule(errs, "unique_student_date") {
			t.Errorf("expected unique_student_date violation, got %+v", errs)
		}
	})

	t.Run("same student on different dates is allowed", func(t *testing.T) {
		other := validRecord()
		other.Date = "2026-03-03"
		if errs := bv.ValidateAttendanceSave([]AttendanceRecordRequest{validRecord(), other}); len(errs) > 0 {
			t.Errorf("expected no errors, got %+v", errs)
		}
	})
}

func TestValidateDateRange(t *testing.T) {
	bv := NewBusinessValidator()

	if errs := bv.ValidateDateRange("2026-03-01", "2026-03-31"); len(errs) > 0 {
		t.Errorf("expected valid range, got %+v", errs)
	}
	if errs := bv.ValidateDateRange("2026-03-01", "2026-03-01"); len(errs) > 0 {
		t.Errorf("expected single-day range to pass, got %+v", errs)
	}
	if errs := bv.ValidateDateRange("2026-03-31", "2026-03-01"); !hasRule(errs, "date_range") {
		t.Errorf("expected date_range violation, got %+v", errs)
	}
	if errs := bv.ValidateDateRange("March 1", "2026-03-31"); !hasRule(errs, "date_format") {
		t.Errorf("expected date_format violation, got %+v", errs)
	}
}

func TestValidateDate(t *testing.T) {
	bv := NewBusinessValidator()

	if errs := bv.ValidateDate("date", "2026-02-28"); len(errs) > 0 {
		t.Errorf("expected valid date, got %+v", errs)
	}
	// February 30th matches the pattern but is not a calendar date.
	if errs := bv.ValidateDate("date", "2026-02-30"); len(errs) == 0 {
		t.Errorf("expected impossible date to fail")
	}
	if errs := bv.ValidateDate("date", "02-30-2026"); len(errs) == 0 {
		t.Errorf("expected wrong format to fail")
	}
}
