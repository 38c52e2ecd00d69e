package reservation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReq(amount int64) Request {
	return Request{
		Type: "payment.create",
		Mode: "test",
		Payment: Payment{
			Amount: amount,
		},
	}
}

func TestDecideApproves(t *testing.T) {
	e := NewEngine()

	for _, amount := range []int64{0, 1, 5000, 19999, 20000} {
		res := e.Decide(createReq(amount), true)
		require.True(t, res.Approved, "amount %d", amount)
		assert.Empty(t, res.Reason)

		id, err := uuid.Parse(res.OrderID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
	}
}

func TestDecideAmountExceedsLimit(t *testing.T) {
	e := NewEngine()

	for _, amount := range []int64{20001, 25000, 1 << 40} {
		res := e.Decide(createReq(amount), true)
		require.False(t, res.Approved, "amount %d", amount)
		assert.Equal(t, KindAmountExceedsLimit, res.Reason)
		assert.NotEmpty(t, res.Message)
		assert.Empty(t, res.OrderID)
	}
}

func TestDecideUnrecognizedType(t *testing.T) {
	e := NewEngine()

	for _, typ := range []string{"payment.cancel", "payment.capture", "", "PAYMENT.CREATE"} {
		req := createReq(99999999)
		req.Type = typ
		res := e.Decide(req, true)
		require.False(t, res.Approved, "type %q", typ)
		assert.Equal(t, KindUnderMaintenance, res.Reason, "type %q", typ)
	}
}

func TestDecideVerifiedIsOrthogonal(t *testing.T) {
	e := NewEngine()

	// all four combinations: the verified flag rides through untouched and
	// never changes the branch
	for _, verified := range []bool{true, false} {
		approve := e.Decide(createReq(100), verified)
		assert.True(t, approve.Approved)
		assert.Equal(t, verified, approve.Authentic)

		decline := e.Decide(createReq(30000), verified)
		assert.False(t, decline.Approved)
		assert.Equal(t, verified, decline.Authentic)
	}
}

func TestOrderIDsNeverRepeat(t *testing.T) {
	e := NewEngine()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		res := e.Decide(createReq(100), true)
		require.True(t, res.Approved)
		_, dup := seen[res.OrderID]
		require.False(t, dup, "order id %s repeated", res.OrderID)
		seen[res.OrderID] = struct{}{}
	}
}

func TestCustomAmountLimit(t *testing.T) {
	e := &Engine{AmountLimit: 500}

	assert.True(t, e.Decide(createReq(500), true).Approved)
	assert.Equal(t, KindAmountExceedsLimit, e.Decide(createReq(501), true).Reason)
}
