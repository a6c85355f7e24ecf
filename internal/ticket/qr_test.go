package ticket

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-planner/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestEncodeQRProducesPNG(t *testing.T) {
	tests := []struct {
		name string
		kind model.BookingKind
		ref  string
	}{
		{name: "hotel", kind: model.KindHotel, ref: "HB1A2B3C4D"},
		{name: "transportation", kind: model.KindTransportation, ref: "TB0F1E2D3C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := EncodeQR("TCKT0123456789", tt.kind, tt.ref)
			require.NoError(t, err)
			require.NotEmpty(t, png)
			assert.True(t, bytes.HasPrefix(png, pngMagic), "expected PNG header")
		})
	}
}

func TestEncodeQRDiffersPerTicket(t *testing.T) {
	a, err := EncodeQR("TCKTAAAAAAAAAA", model.KindHotel, "HB11111111")
	require.NoError(t, err)
	b, err := EncodeQR("TCKTBBBBBBBBBB", model.KindHotel, "HB22222222")
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b), "different payloads must yield different images")
}
