//go:build unit

package cart_test

import (
	"testing"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	owner := cart.UserOwner(uuid.New())
	p1, p2 := uuid.New(), uuid.New()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	testCases := []struct {
		name    string
		owner   cart.Owner
		lines   []cart.Line
		wantErr error
	}{
		{
			name:  "success: two distinct lines",
			owner: owner,
			lines: []cart.Line{
				{ProductID: p1, Quantity: 1, UnitPrice: money.MustNew(1000)},
				{ProductID: p2, Quantity: 3, UnitPrice: money.MustNew(250)},
			},
		},
		{
			name:  "success: empty cart is a valid snapshot",
			owner: owner,
		},
		{
			name:    "error: missing owner",
			lines:   []cart.Line{{ProductID: p1, Quantity: 1}},
			wantErr: errs.ErrInvalidCart,
		},
		{
			name:    "error: zero quantity",
			owner:   owner,
			lines:   []cart.Line{{ProductID: p1, Quantity: 0}},
			wantErr: errs.ErrInvalidCart,
		},
		{
			name:  "error: duplicate product",
			owner: owner,
			lines: []cart.Line{
				{ProductID: p1, Quantity: 1},
				{ProductID: p1, Quantity: 2},
			},
			wantErr: errs.ErrInvalidCart,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := cart.NewSnapshot(tc.owner, tc.lines, now)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tc.lines), snap.Len())
			assert.Equal(t, len(tc.lines) == 0, snap.IsEmpty())
		})
	}
}

func TestSnapshot_IsImmutable(t *testing.T) {
	lines := []cart.Line{{ProductID: uuid.New(), Quantity: 2, UnitPrice: money.MustNew(500)}}
	snap, err := cart.NewSnapshot(cart.UserOwner(uuid.New()), lines, time.Now())
	require.NoError(t, err)

	lines[0].Quantity = 99
	got := snap.Lines()
	got[0].Quantity = 42

	assert.Equal(t, 2, snap.Lines()[0].Quantity)
	assert.Equal(t, int64(1000), snap.Subtotal().Minor())
}

func TestSnapshot_Fingerprint(t *testing.T) {
	owner := cart.UserOwner(uuid.New())
	lines := []cart.Line{{ProductID: uuid.New(), Quantity: 1, UnitPrice: money.MustNew(100)}}

	a, err := cart.NewSnapshot(owner, lines, time.Now())
	require.NoError(t, err)
	b, err := cart.NewSnapshot(owner, lines, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "taken_at must not affect the fingerprint")

	lines[0].Quantity = 2
	c, err := cart.NewSnapshot(owner, lines, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestParseOwner(t *testing.T) {
	uid := uuid.New()
	o, err := cart.ParseOwner("user:" + uid.String())
	require.NoError(t, err)
	assert.Equal(t, cart.UserOwner(uid), o)

	o, err = cart.ParseOwner("session:abc")
	require.NoError(t, err)
	assert.Equal(t, cart.OwnerSession, o.Kind)
	assert.Equal(t, "session:abc", o.String())

	_, err = cart.ParseOwner("robot:1")
	assert.Error(t, err)
}
