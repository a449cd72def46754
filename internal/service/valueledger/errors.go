package valueledger

import "errors"

var (
	// ErrInvalidTaxMode возвращается для неизвестного режима налога
	ErrInvalidTaxMode = errors.New("valueledger: invalid tax mode")

	// ErrInvalidAmount возвращается для отрицательных или нечисловых сумм
	ErrInvalidAmount = errors.New("valueledger: invalid amount")
)
