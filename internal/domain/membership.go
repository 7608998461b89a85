package domain

import "time"

// MembershipStatus represents the status of a VIP membership subscription
type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusPaused    MembershipStatus = "paused"
	MembershipStatusHalted    MembershipStatus = "halted"
	MembershipStatusCancelled MembershipStatus = "cancelled"
)

// DefaultCreditsPerActivation количество сессионных кредитов,
// выдаваемых при активации VIP подписки
const DefaultCreditsPerActivation = 4

// VIPMembership represents a VIP subscription of a user
// Состояние обновляется только событиями шлюза (subscription.*)
type VIPMembership struct {
	ID             int64
	UserID         int64
	SubscriptionID string
	Status         MembershipStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SessionCredit represents a grant of prepaid session credits
// Одна запись на активацию подписки; повторная активация (replay события)
// не создает вторую запись
type SessionCredit struct {
	ID           int64
	MembershipID int64
	UserID       int64
	Total        int
	Used         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Remaining возвращает количество неиспользованных кредитов
func (c *SessionCredit) Remaining() int {
	if c.Used >= c.Total {
		return 0
	}
	return c.Total - c.Used
}
