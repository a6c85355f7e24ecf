package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingReferenceFormat(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   *regexp.Regexp
	}{
		{name: "hotel", prefix: HotelBookingPrefix, want: regexp.MustCompile(`^HB[0-9A-F]{8}$`)},
		{name: "transportation", prefix: TransportBookingPrefix, want: regexp.MustCompile(`^TB[0-9A-F]{8}$`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewBookingReference(tt.prefix)
			assert.Regexp(t, tt.want, ref)
		})
	}
}

func TestNewTicketNumberFormatAndUniqueness(t *testing.T) {
	re := regexp.MustCompile(`^TCKT[0-9A-F]{10}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n := NewTicketNumber()
		require.Regexp(t, re, n)
		_, dup := seen[n]
		require.False(t, dup, "duplicate ticket number %s", n)
		seen[n] = struct{}{}
	}
}

func TestNewTransactionIDCarriesDateStamp(t *testing.T) {
	now := time.Date(2025, 8, 31, 14, 0, 0, 0, time.UTC)
	id := NewTransactionID(now)
	assert.Regexp(t, `^TR20250831[0-9A-F]{8}$`, id)
}

func TestNewTransactionIDUsesUTCDate(t *testing.T) {
	// 00:30 in a +02:00 zone is still the previous day in UTC;
	// the stamp must follow UTC.
	loc := time.FixedZone("plus2", 2*3600)
	now := time.Date(2025, 1, 1, 0, 30, 0, 0, loc) // 2024-12-31T22:30Z
	id := NewTransactionID(now)
	assert.Regexp(t, `^TR20241231[0-9A-F]{8}$`, id)
}
