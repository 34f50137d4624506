package purchase_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/purchase"
)

func pays(amounts ...string) []entity.PaymentAllocation {
	out := make([]entity.PaymentAllocation, len(amounts))
	for i, a := range amounts {
		out[i] = entity.PaymentAllocation{Amount: d(a)}
	}
	return out
}

func TestReconcile(t *testing.T) {
	cases := []struct {
		name    string
		total   string
		amounts []string
		paid    string
		pending string
		status  entity.PaymentStatus
	}{
		{"pago parcial", "144.55", []string{"50.00", "50.00"}, "100.00", "44.55", entity.PaymentStatusPending},
		{"sobrepago", "144.55", []string{"200.00"}, "200.00", "0", entity.PaymentStatusPaid},
		{"pago exacto", "144.55", []string{"100.00", "44.55"}, "144.55", "0", entity.PaymentStatusPaid},
		{"sin pagos", "144.55", nil, "0", "144.55", entity.PaymentStatusPending},
		{"total cero", "0", nil, "0", "0", entity.PaymentStatusPaid},
		{"negativos no suman", "10", []string{"-5", "4"}, "4", "6", entity.PaymentStatusPending},
		{"redondeo de la suma", "10.01", []string{"5.004", "5.004"}, "10.01", "0", entity.PaymentStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := purchase.Reconcile(d(tc.total), pays(tc.amounts...))
			assertDec(t, tc.paid, r.Paid, "paid")
			assertDec(t, tc.pending, r.Pending, "pending")
			assert.Equal(t, tc.status, r.Status)
		})
	}
}

func TestReconcile_NoMutaPagos(t *testing.T) {
	in := pays("10.005", "-3")
	purchase.Reconcile(d("5"), in)
	assert.Equal(t, "10.005", in[0].Amount.String())
	assert.Equal(t, "-3", in[1].Amount.String())
}

func TestReconcile_Monotonia(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 11))
	for i := 0; i < 300; i++ {
		total := decimal.New(int64(r.IntN(100000)), -2)
		allocs := make([]entity.PaymentAllocation, 1+r.IntN(5))
		for j := range allocs {
			allocs[j].Amount = decimal.New(int64(r.IntN(40000)), -2)
		}
		before := purchase.Reconcile(total, allocs)

		bumped := append([]entity.PaymentAllocation(nil), allocs...)
		k := r.IntN(len(bumped))
		bumped[k].Amount = bumped[k].Amount.Add(decimal.New(int64(1+r.IntN(5000)), -2))
		after := purchase.Reconcile(total, bumped)

		require.True(t, after.Paid.GreaterThanOrEqual(before.Paid), "paid no decrece")
		require.True(t, after.Pending.LessThanOrEqual(before.Pending), "pending no crece")
		require.False(t, after.Pending.IsNegative())
		if after.Paid.Equal(total) {
			require.Equal(t, entity.PaymentStatusPaid, after.Status)
		}
	}
}
