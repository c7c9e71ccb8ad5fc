package models

// CardType classifies a payment card.
type CardType string

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardTypeCredit CardType = "CREDIT"
	CardTypeDebit  CardType = "DEBIT"

	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

// Card is a payment card registered to a user.
type Card struct {
	ID             int64      `json:"id"`
	CardNumber     string     `json:"cardNumber"`
	CardHolderName string     `json:"cardHolderName,omitempty"`
	CardType       CardType   `json:"cardType"`
	ExpiryMonth    string     `json:"expiryMonth"`
	ExpiryYear     string     `json:"expiryYear"`
	Status         CardStatus `json:"status"`
	IsDefault      bool       `json:"isDefault"`
	CreatedAt      Timestamp  `json:"createdAt"`
}

// Active reports whether the card may be used for tap-in.
func (c Card) Active() bool {
	return c.Status == CardStatusActive
}

// CardRequest is the POST /cards/user/{id} body.
type CardRequest struct {
	CardNumber     string   `json:"cardNumber"`
	CardHolderName string   `json:"cardHolderName,omitempty"`
	ExpiryMonth    string   `json:"expiryMonth"`
	ExpiryYear     string   `json:"expiryYear"`
	CardType       CardType `json:"cardType"`
	IsDefault      bool     `json:"isDefault"`
}
