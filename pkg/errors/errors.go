package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
	ErrConflict   = fmt.Errorf("запись уже существует")
)

// HttpError — ошибка с готовым HTTP-статусом и контекстом для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string { return e.Message }
func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// PermissionDeniedError — профиль актора не даёт права на операцию.
// Проверяется ПЕРЕД любым обращением к данным.
type PermissionDeniedError struct {
	Message string
}

func (e *PermissionDeniedError) Error() string { return e.Message }

func NewPermissionDenied(format string, args ...interface{}) error {
	return &PermissionDeniedError{Message: fmt.Sprintf(format, args...)}
}

func IsPermissionDenied(err error) bool {
	var pd *PermissionDeniedError
	return errors.As(err, &pd)
}

// TransitionError — текущее состояние/локация/занятость поста не
// удовлетворяют предусловию перехода. Не фатальна, данные не меняются.
type TransitionError struct {
	Reason string
}

func (e *TransitionError) Error() string { return e.Reason }

func NewTransitionError(format string, args ...interface{}) error {
	return &TransitionError{Reason: fmt.Sprintf(format, args...)}
}

func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
