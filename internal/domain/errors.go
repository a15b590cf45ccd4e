package domain

import "errors"

// ErrValidation ошибка: входные данные не прошли клиентскую проверку
var ErrValidation = errors.New("validation failed")

// ErrInvalidCode ошибка: код из СМС не принят сервером
var ErrInvalidCode = errors.New("invalid verification code")

// ErrNetwork ошибка: ответ от сервера не получен
var ErrNetwork = errors.New("network unavailable")

// ErrAlreadyInProgress ошибка: такой же запрос уже выполняется
var ErrAlreadyInProgress = errors.New("operation already in progress")

var ErrNotFound = errors.New("not found")

var ErrUnauthorized = errors.New("unauthorized")

// ErrNoCredentials no durable token on this device.
var ErrNoCredentials = errors.New("no stored credentials")

// ErrOnboardingUnavailable the backend does not expose the onboarding
// endpoint yet; distinguishable from a plain failure so the caller can decide
// whether to block or treat the user as implicitly onboarded.
var ErrOnboardingUnavailable = errors.New("onboarding unavailable")
