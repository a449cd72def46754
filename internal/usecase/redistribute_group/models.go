package redistribute_group

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

// Request модель запроса на изменение итога группы
type Request struct {
	TenantID string
	GroupID  string
	NewTotal float64
	// Currency валюта введенного итога; пустая - операционная валюта (CLP).
	// Итог в CLP для группы в USD переводится по курсу оценки группы.
	Currency money.Currency
}

// Response модель ответа с результатом перераспределения
type Response struct {
	GroupID       string
	Currency      money.Currency // Валюта оценки группы
	NewTotal      float64
	PreviousTotal float64
	AnchorTotal   float64
	Adjustment    float64
	EqualSplit    bool
	// ExchangeRate курс, по которому переведен итог; 0, если перевод не понадобился
	ExchangeRate float64
	Reservations []domain.Reservation
}
