package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/validator"
)

func newStudentFixture(t *testing.T) (StudentService, *MockRepository) {
	t.Helper()
	repo := NewMockRepository()
	service := NewStudentService(repo, nil, testLogger(), validator.New())
	return service, repo
}

func TestStudentCreateNormalizesInput(t *testing.T) {
	service, _ := newStudentFixture(t)

	student, err := service.Create(context.Background(), &StudentCreateRequest{
		StudentName: "  Alice Brown  ",
		BirthDate:   "2015-04-01",
		Gender:      "FEMALE",
		ClassID:     "1A",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if student.StudentName != "Alice Brown" {
		t.Errorf("expected trimmed name, got %q", student.StudentName)
	}
	if student.Gender != models.GenderFemale {
		t.Errorf("expected lowercased gender, got %q", student.Gender)
	}
	if student.StudentID == 0 {
		t.Errorf("expected assigned id")
	}
}

func TestStudentCreateValidationFailure(t *testing.T) {
	service, repo := newStudentFixture(t)

	_, err := service.Create(context.Background(), &StudentCreateRequest{
		StudentName: "A",
		BirthDate:   "2015-04-01",
		Gender:      "female",
		ClassID:     "1A",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if len(repo.students) != 0 {
		t.Errorf("expected nothing persisted on validation failure")
	}
}

func TestStudentGetByIDComputesAge(t *testing.T) {
	service, repo := newStudentFixture(t)

	birthYear := time.Now().Year() - 10
	ids := seedStudents(repo, "Alice Brown")
	repo.students[ids[0]].BirthDate = time.Date(birthYear, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	student, err := service.GetByID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if student.Age != 10 {
		t.Errorf("expected age 10, got %d", student.Age)
	}
}

func TestStudentGetByIDNotFound(t *testing.T) {
	service, _ := newStudentFixture(t)

	if _, err := service.GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStudentUpdatePartialFields(t *testing.T) {
	service, repo := newStudentFixture(t)
	ids := seedStudents(repo, "Alice Brown")

	newClass := "2B"
	student, err := service.Update(context.Background(), ids[0], &StudentUpdateRequest{
		ClassID: &newClass,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if student.ClassID != "2B" {
		t.Errorf("expected updated class, got %q", student.ClassID)
	}
	if student.StudentName != "Alice Brown" {
		t.Errorf("expected untouched name, got %q", student.StudentName)
	}
}

func TestStudentDeleteNotFound(t *testing.T) {
	service, _ := newStudentFixture(t)

	if err := service.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStudentGetByGenderRejectsBadValue(t *testing.T) {
	service, _ := newStudentFixture(t)

	if _, err := service.GetByGender(context.Background(), "other"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation failure, got %v", err)
	}
}
