package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration ошибка конфигурации каналов продаж (фатальная, не повторяется)
	ErrConfiguration = errors.New("configuration error")

	// ErrNoDefaultChannel ни один канал не помечен как канал по умолчанию
	ErrNoDefaultChannel = fmt.Errorf("%w: no default channel configured", ErrConfiguration)

	// ErrMultipleDefaultChannels несколько каналов помечены как канал по умолчанию
	ErrMultipleDefaultChannels = fmt.Errorf("%w: more than one default channel", ErrConfiguration)

	// ErrInvalidModifier неизвестный тип модификатора цены канала
	ErrInvalidModifier = fmt.Errorf("%w: unknown channel modifier type", ErrConfiguration)

	// ErrInvalidChannel запрошенный канал не существует у арендатора
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrExchangeRateUnavailable курс валют нужен, но недоступен
	ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")

	// ErrBookingConflict при фиксации бронирования обнаружено пересечение с новым занятием юнита
	ErrBookingConflict = errors.New("booking conflict: availability changed")

	// ErrRedistributionInput группа пуста или ее бронирования имеют разную базу оценки
	ErrRedistributionInput = errors.New("invalid redistribution input")

	// ErrInvalidDateRange конец периода не позже начала
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidStatusTransition недопустимый переход статуса бронирования
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidStatus неизвестный статус бронирования
	ErrInvalidStatus = errors.New("invalid management status")
)
