// Package services содержит бизнес-логику жизненного цикла пользователей:
// валидацию кандидатов, создание с хэшированием пароля, чтение, листинг и удаление.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// candidateFormat повторяет поля кандидата с правилами формата.
// Уникальность проверяется отдельно, по данным хранилища.
type candidateFormat struct {
	Username string `validate:"required,min=3,max=50,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,passwordstrength"`
}

// newCandidateValidator создает валидатор с кастомными правилами
// для имени пользователя и сложности пароля.
func newCandidateValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegexp.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("passwordstrength", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
	return v
}

// isStrongPassword требует не менее 8 символов, хотя бы одну букву и одну цифру.
func isStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// formatViolations переводит ошибки валидатора в нарушения по полям.
func formatViolations(errs validator.ValidationErrors) []models.FieldViolation {
	violations := make([]models.FieldViolation, 0, len(errs))
	for _, err := range errs {
		var field, msg string
		switch err.Field() {
		case "Username":
			field = "username"
			switch err.ActualTag() {
			case "required":
				msg = "is required"
			case "min", "max":
				msg = "must be between 3 and 50 characters"
			default:
				msg = "may contain only letters, digits and underscore"
			}
		case "Email":
			field = "email"
			if err.ActualTag() == "required" {
				msg = "is required"
			} else {
				msg = "must be a valid email address"
			}
		case "Password":
			field = "password"
			if err.ActualTag() == "required" {
				msg = "is required"
			} else {
				msg = "must be at least 8 characters and contain a letter and a digit"
			}
		default:
			field = err.Field()
			msg = "is not valid"
		}
		violations = append(violations, models.FieldViolation{Field: field, Message: msg})
	}
	return violations
}

// ValidateCandidate проверяет формат полей кандидата и уникальность
// username и email по данным хранилища. Состояние не изменяет.
//
// Все нарушения собираются за один вызов; ошибка возвращается только
// при сбое обращения к хранилищу.
func (s *UserService) ValidateCandidate(ctx context.Context, cand models.Candidate) ([]models.FieldViolation, error) {
	const op = "services.user.ValidateCandidate"

	var violations []models.FieldViolation
	if err := s.validate.Struct(candidateFormat(cand)); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		violations = formatViolations(verrs)
	}

	if !violationForField(violations, "username") {
		_, err := s.repo.GetUserByUsername(ctx, cand.Username)
		switch {
		case err == nil:
			violations = append(violations, models.FieldViolation{Field: "username", Message: "already taken"})
		case !errors.Is(err, models.ErrUserNotFound):
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if !violationForField(violations, "email") {
		_, err := s.repo.GetUserByEmail(ctx, cand.Email)
		switch {
		case err == nil:
			violations = append(violations, models.FieldViolation{Field: "email", Message: "already taken"})
		case !errors.Is(err, models.ErrUserNotFound):
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return violations, nil
}

func violationForField(violations []models.FieldViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}
