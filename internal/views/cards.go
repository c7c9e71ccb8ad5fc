package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"transitpay/internal/clients"
	"transitpay/internal/format"
	"transitpay/internal/models"
	"transitpay/internal/notice"
)

// CardNumberDigits is the required card number length after removing whitespace.
const CardNumberDigits = 16

// CardsController lists and manages payment cards.
type CardsController struct {
	Deps
}

// NewCardsController returns the controller.
func NewCardsController(d Deps) *CardsController {
	return &CardsController{Deps: d}
}

// List renders the user's cards.
func (c *CardsController) List(ctx context.Context) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	cards, err := c.API.Cards.ListByUser(ctx, userID)
	if err != nil {
		c.notify(notice.Danger, "Failed to load cards: "+err.Error())
		return c.loadFailed("cards", err)
	}
	if len(cards) == 0 {
		c.printf("No cards yet. Add one with `cards add`.\n")
		return nil
	}

	tw := newTable(c.Out)
	fmt.Fprintln(tw, "ID\tNUMBER\tTYPE\tEXPIRES\tDEFAULT\tSTATUS")
	for _, card := range cards {
		def := ""
		if card.IsDefault {
			def = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s/%s\t%s\t%s\n",
			card.ID, format.MaskCardNumber(card.CardNumber), card.CardType,
			card.ExpiryMonth, card.ExpiryYear, def, c.badge(string(card.Status)))
	}
	return tw.Flush()
}

// CardForm is the add-card input. Number may contain whitespace.
type CardForm struct {
	Number      string
	HolderName  string
	ExpiryMonth string
	ExpiryYear  string
	Type        models.CardType
	Default     bool
}

// Request validates the form and builds the backend request.
func (f CardForm) Request() (models.CardRequest, error) {
	number := format.NormalizeCardNumber(f.Number)
	if len(number) != CardNumberDigits || strings.Trim(number, "0123456789") != "" {
		return models.CardRequest{}, invalid("cardNumber", "Card number must be 16 digits")
	}

	cardType := models.CardType(strings.ToUpper(strings.TrimSpace(string(f.Type))))
	switch cardType {
	case "":
		cardType = models.CardTypeCredit
	case models.CardTypeCredit, models.CardTypeDebit:
	default:
		return models.CardRequest{}, invalid("cardType", "Card type must be CREDIT or DEBIT")
	}

	month, err := strconv.Atoi(strings.TrimSpace(f.ExpiryMonth))
	if err != nil || month < 1 || month > 12 {
		return models.CardRequest{}, invalid("expiryMonth", "Expiry month must be between 01 and 12")
	}
	year := strings.TrimSpace(f.ExpiryYear)
	if _, err := strconv.Atoi(year); err != nil || len(year) != 4 {
		return models.CardRequest{}, invalid("expiryYear", "Expiry year must have four digits")
	}

	return models.CardRequest{
		CardNumber:     number,
		CardHolderName: strings.TrimSpace(f.HolderName),
		ExpiryMonth:    fmt.Sprintf("%02d", month),
		ExpiryYear:     year,
		CardType:       cardType,
		IsDefault:      f.Default,
	}, nil
}

// Add registers a card and reloads the list.
func (c *CardsController) Add(ctx context.Context, form CardForm) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	req, err := form.Request()
	if err != nil {
		return c.actionFailed("add card", err)
	}
	if _, err := c.API.Cards.Add(ctx, userID, req); err != nil {
		return c.actionFailed("add card", err)
	}
	c.notify(notice.Success, "Card added successfully!")
	return c.List(ctx)
}

// SetDefault makes cardID the default payment card.
func (c *CardsController) SetDefault(ctx context.Context, cardID int64) error {
	if _, err := c.userID(ctx); err != nil {
		return err
	}
	if err := c.API.Cards.SetDefault(ctx, cardID); err != nil {
		return c.actionFailed("set default card", err)
	}
	c.notify(notice.Success, "Default card updated!")
	return c.List(ctx)
}

// Delete removes cardID.
func (c *CardsController) Delete(ctx context.Context, cardID int64) error {
	if _, err := c.userID(ctx); err != nil {
		return err
	}
	if err := c.API.Cards.Delete(ctx, cardID); err != nil {
		return c.actionFailed("delete card", err)
	}
	c.notify(notice.Success, "Card deleted successfully!")
	return c.List(ctx)
}

// Block reports that blocking is unavailable; the backend has no endpoint for it.
func (c *CardsController) Block(ctx context.Context, cardID int64) error {
	if _, err := c.userID(ctx); err != nil {
		return err
	}
	err := c.API.Cards.Block(ctx, cardID)
	if errors.Is(err, clients.ErrNotSupported) {
		c.notify(notice.Warning, "Blocking cards is not available yet.")
	}
	return err
}
