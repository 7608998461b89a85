package domain

import "time"

// RefundBand полоса возврата, определяемая временем до начала сеанса
type RefundBand string

const (
	RefundBandNone RefundBand = "NONE"
	RefundBandHalf RefundBand = "HALF"
	RefundBandFull RefundBand = "FULL"
)

// RefundDecision результат расчета возврата при отмене
type RefundDecision struct {
	Band        RefundBand
	RefundPaise int64
}

// ComputeRefund вычисляет полосу и сумму возврата по времени до начала сеанса
// Границы включаются в старшую полосу: ровно 24ч -> HALF, ровно 48ч -> FULL
// Чистая функция без побочных эффектов
func ComputeRefund(scheduledAt, now time.Time, pricePaise int64) RefundDecision {
	lead := scheduledAt.Sub(now)

	switch {
	case lead >= FullRefundNoticeHours*time.Hour:
		return RefundDecision{Band: RefundBandFull, RefundPaise: pricePaise}
	case lead >= HalfRefundNoticeHours*time.Hour:
		return RefundDecision{Band: RefundBandHalf, RefundPaise: pricePaise / 2}
	default:
		return RefundDecision{Band: RefundBandNone, RefundPaise: 0}
	}
}
