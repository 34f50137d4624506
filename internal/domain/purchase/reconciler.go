package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/lfuis201/ferreteriafacturacion-sub004/internal/domain/entity"
)

// Reconcile concilia los pagos contra el total del documento.
//
// Los montos se suman sin conversión de moneda; el llamador garantiza que están en la
// moneda del documento. Montos negativos violan el invariante y no suman.
// Pending nunca es negativo: un sobrepago se reporta con Paid > total y Pending = 0.
// Un documento con total 0 queda PAID (paid >= 0 >= total).
func Reconcile(total decimal.Decimal, allocations []entity.PaymentAllocation) entity.Reconciliation {
	var sum decimal.Decimal
	for _, a := range allocations {
		if a.Amount.IsNegative() {
			continue
		}
		sum = sum.Add(a.Amount)
	}
	paid := Round2(sum)
	due := Round2(total)

	pending := Round2(due.Sub(paid))
	if pending.IsNegative() {
		pending = decimal.Zero
	}

	status := entity.PaymentStatusPending
	if paid.GreaterThanOrEqual(due) {
		status = entity.PaymentStatusPaid
	}
	return entity.Reconciliation{Paid: paid, Pending: pending, Status: status}
}
