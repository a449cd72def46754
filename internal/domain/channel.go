package domain

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/pkg/money"
)

// ModifierType kind of price adjustment a channel applies to the default channel's price
type ModifierType string

const (
	ModifierNone       ModifierType = "none"
	ModifierPercentage ModifierType = "percentage"
	ModifierFixed      ModifierType = "fixed"
)

// IsValid returns true for known modifier types (empty counts as none)
func (m ModifierType) IsValid() bool {
	switch m {
	case "", ModifierNone, ModifierPercentage, ModifierFixed:
		return true
	default:
		return false
	}
}

// Channel represents a sales channel (direct, Airbnb, Booking, ...)
type Channel struct {
	ID            string
	TenantID      string
	Name          string
	Currency      money.Currency
	ModifierType  ModifierType
	ModifierValue float64
	IsDefault     bool
}

// HasModifier returns true if the channel adjusts base prices
func (c *Channel) HasModifier() bool {
	return (c.ModifierType == ModifierPercentage || c.ModifierType == ModifierFixed) && c.ModifierValue != 0
}

// ChannelRegistry tenant's sales channels with exactly one default channel.
// The invariant is checked once in NewChannelRegistry; pricing code relies on it.
type ChannelRegistry struct {
	channels  map[string]Channel
	defaultID string
}

// NewChannelRegistry validates the channel set and builds the registry
func NewChannelRegistry(channels []Channel) (*ChannelRegistry, error) {
	reg := &ChannelRegistry{
		channels: make(map[string]Channel, len(channels)),
	}

	for _, ch := range channels {
		if !ch.ModifierType.IsValid() {
			return nil, fmt.Errorf("%w: channel %s has modifier %q", ErrInvalidModifier, ch.ID, ch.ModifierType)
		}
		if ch.IsDefault {
			if reg.defaultID != "" {
				return nil, fmt.Errorf("%w: %s and %s", ErrMultipleDefaultChannels, reg.defaultID, ch.ID)
			}
			reg.defaultID = ch.ID
		}
		reg.channels[ch.ID] = ch
	}

	if reg.defaultID == "" {
		return nil, ErrNoDefaultChannel
	}

	return reg, nil
}

// Default returns the channel that anchors base prices and their currency
func (r *ChannelRegistry) Default() Channel {
	return r.channels[r.defaultID]
}

// Get returns a channel by ID
func (r *ChannelRegistry) Get(id string) (Channel, error) {
	ch, ok := r.channels[id]
	if !ok {
		return Channel{}, fmt.Errorf("%w: %s", ErrInvalidChannel, id)
	}
	return ch, nil
}
