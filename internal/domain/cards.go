package domain

import "time"

// ============================================================
// Payment Cards
// ============================================================

// CardType identifies the product tier of a payment card.
type CardType string

const (
	CardTypeVirtualDebit  CardType = "virtual-debit"
	CardTypeStandardDebit CardType = "standard-debit"
	CardTypePremiumDebit  CardType = "premium-debit"
)

// cardTypeLabels maps card types to their display names.
var cardTypeLabels = map[CardType]string{
	CardTypeVirtualDebit:  "Virtual Debit",
	CardTypeStandardDebit: "Standard Debit",
	CardTypePremiumDebit:  "Premium Debit",
}

// Valid reports whether t is a known card type.
func (t CardType) Valid() bool {
	_, ok := cardTypeLabels[t]
	return ok
}

// Label returns the display name for the card type.
func (t CardType) Label() string {
	if l, ok := cardTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardStatusPending    CardStatus = "pending"
	CardStatusActive     CardStatus = "active"
	CardStatusProcessing CardStatus = "processing"
	CardStatusShipped    CardStatus = "shipped"
	CardStatusRejected   CardStatus = "rejected"
	CardStatusFrozen     CardStatus = "frozen"
	CardStatusCancelled  CardStatus = "cancelled"
)

// cardStatusBadges maps statuses to the badge variant the dashboard renders.
// Defined once here instead of switch statements scattered across screens.
var cardStatusBadges = map[CardStatus]string{
	CardStatusPending:    "warning",
	CardStatusActive:     "success",
	CardStatusProcessing: "info",
	CardStatusShipped:    "info",
	CardStatusRejected:   "danger",
	CardStatusFrozen:     "secondary",
	CardStatusCancelled:  "secondary",
}

// Valid reports whether s is a known card status.
func (s CardStatus) Valid() bool {
	_, ok := cardStatusBadges[s]
	return ok
}

// Badge returns the badge variant for the status.
func (s CardStatus) Badge() string {
	if b, ok := cardStatusBadges[s]; ok {
		return b
	}
	return "secondary"
}

// CardLimits holds a card's configured spending limits and the usage
// accumulated within the current windows. Usage counters are owned by the
// core bank; the BFF never mutates them locally.
type CardLimits struct {
	Daily       float64 `json:"daily"`
	Monthly     float64 `json:"monthly"`
	DailyUsed   float64 `json:"dailyUsed"`
	MonthlyUsed float64 `json:"monthlyUsed"`
}

// Card represents a payment card as owned by the core bank.
type Card struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customerId"`
	HolderName  string     `json:"holderName"`
	Email       string     `json:"email"`
	Last4       string     `json:"last4"`
	Type        CardType   `json:"type"`
	Status      CardStatus `json:"status"`
	Limits      CardLimits `json:"limits"`
	Balance     float64    `json:"balance"`
	RequestedAt time.Time  `json:"requestedAt"`
	IssuedAt    *time.Time `json:"issuedAt,omitempty"`
}

// CardRequest is the payload to request a new card.
type CardRequest struct {
	Type   CardType    `json:"type"`
	Limits *CardLimits `json:"limits,omitempty"`
}

// TransactionType classifies a card transaction.
type TransactionType string

const (
	TransactionTypePurchase   TransactionType = "purchase"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeRefund     TransactionType = "refund"
)

// CardTransaction is a single entry on a card's statement.
// Append-only from the dashboard's perspective.
type CardTransaction struct {
	ID       string          `json:"id"`
	CardID   string          `json:"cardId"`
	Type     TransactionType `json:"type"`
	Amount   float64         `json:"amount"`
	Category string          `json:"category"`
	Merchant string          `json:"merchant"`
	Date     time.Time       `json:"date"`
}

// ============================================================
// Card API response types (matches frontend contract)
// ============================================================

// CardAPIResponse is the card shape returned to the dashboard, with the
// utilization ratios precomputed so user and admin screens render the same
// progress-bar widths for the same card.
type CardAPIResponse struct {
	ID                 string     `json:"id"`
	HolderName         string     `json:"holderName"`
	Last4              string     `json:"last4"`
	Type               CardType   `json:"type"`
	TypeLabel          string     `json:"typeLabel"`
	Status             CardStatus `json:"status"`
	StatusBadge        string     `json:"statusBadge"`
	Limits             CardLimits `json:"limits"`
	Balance            float64    `json:"balance"`
	DailyUtilization   float64    `json:"dailyUtilization"`
	MonthlyUtilization float64    `json:"monthlyUtilization"`
	RequestedAt        string     `json:"requestedAt"`
}

// CanSpendRequest asks whether an amount would be admissible on a card.
type CanSpendRequest struct {
	Amount float64 `json:"amount"`
}

// CanSpendResponse is the advisory spending decision.
type CanSpendResponse struct {
	Admissible bool   `json:"admissible"`
	Reason     string `json:"reason,omitempty"`
}

// UpdateLimitsRequest is the body for PUT /api/atm-cards/{id}/limits.
type UpdateLimitsRequest struct {
	Limits CardLimits `json:"limits"`
}

// RejectCardRequest carries the admin's rejection reason.
type RejectCardRequest struct {
	Reason string `json:"reason"`
}

// SpendingCategory is one slice of the spending breakdown chart.
type SpendingCategory struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// SpendingSummary aggregates a card's purchases by category.
type SpendingSummary struct {
	CardID     string             `json:"cardId"`
	Total      float64            `json:"total"`
	Categories []SpendingCategory `json:"categories"`
}
