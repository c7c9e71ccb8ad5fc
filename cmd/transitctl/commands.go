package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"transitpay/internal/filter"
	"transitpay/internal/models"
	"transitpay/internal/views"
)

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}

// parseDay reads a --from/--to value in any layout dateparse understands, in local time.
func parseDay(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return t, nil
}

func parseRange(from, to string) (filter.DateRange, error) {
	var r filter.DateRange
	var err error
	if r.From, err = parseDay(from); err != nil {
		return r, err
	}
	if r.To, err = parseDay(to); err != nil {
		return r, err
	}
	return r, nil
}

func (c *cli) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			if a.Session.IsAuthenticated(cmd.Context()) {
				return a.Auth().Login(cmd.Context(), email, "")
			}
			if email == "" {
				if email, err = c.prompt.line("Email: "); err != nil {
					return err
				}
			}
			password, err := c.prompt.password("Password: ")
			if err != nil {
				return err
			}
			return a.Auth().Login(cmd.Context(), email, password)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var form views.RegisterForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			if form.Password, err = c.prompt.password("Password: "); err != nil {
				return err
			}
			if form.Confirm, err = c.prompt.password("Confirm password: "); err != nil {
				return err
			}
			return a.Auth().Register(cmd.Context(), form)
		},
	}
	cmd.Flags().StringVar(&form.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "Email")
	cmd.Flags().StringVar(&form.PhoneNumber, "phone", "", "Phone number")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Auth().Logout(cmd.Context())
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user and token details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Auth().Whoami(cmd.Context())
		},
	}
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Balance, active journey and recent activity",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Dashboard().Show(cmd.Context())
		},
	}
}

func (c *cli) topUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topup AMOUNT",
		Short: "Add funds to the balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(strings.TrimPrefix(args[0], "$"), 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Dashboard().TopUp(cmd.Context(), amount)
		},
	}
}

func (c *cli) tapInCmd() *cobra.Command {
	var stationID, cardID int64
	cmd := &cobra.Command{
		Use:   "tap-in",
		Short: "Start a journey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Dashboard().TapIn(cmd.Context(), stationID, cardID)
		},
	}
	cmd.Flags().Int64VarP(&stationID, "station", "s", 0, "Entry station id")
	cmd.Flags().Int64Var(&cardID, "card", 0, "Card id; defaults to the default active card")
	return cmd
}

func (c *cli) tapOutCmd() *cobra.Command {
	var stationID, journeyID int64
	cmd := &cobra.Command{
		Use:   "tap-out",
		Short: "End the active journey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			if journeyID > 0 {
				return a.Dashboard().QuickTapOut(cmd.Context(), journeyID, stationID)
			}
			return a.Dashboard().TapOut(cmd.Context(), stationID)
		},
	}
	cmd.Flags().Int64VarP(&stationID, "station", "s", 0, "Exit station id")
	cmd.Flags().Int64Var(&journeyID, "journey", 0, "Journey id; defaults to the active journey")
	return cmd
}

func (c *cli) cardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage payment cards",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Cards().List(cmd.Context())
		},
	}

	var form views.CardForm
	var cardType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			form.Type = models.CardType(cardType)
			return a.Cards().Add(cmd.Context(), form)
		},
	}
	add.Flags().StringVar(&form.Number, "number", "", "16 digit card number")
	add.Flags().StringVar(&form.HolderName, "holder", "", "Card holder name")
	add.Flags().StringVar(&form.ExpiryMonth, "month", "", "Expiry month (1-12)")
	add.Flags().StringVar(&form.ExpiryYear, "year", "", "Expiry year (YYYY)")
	add.Flags().StringVar(&cardType, "type", string(models.CardTypeCredit), "CREDIT or DEBIT")
	add.Flags().BoolVar(&form.Default, "default", false, "Make this the default card")
	_ = add.MarkFlagRequired("number")

	setDefault := &cobra.Command{
		Use:   "default CARD_ID",
		Short: "Set the default payment card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "card")
			if err != nil {
				return err
			}
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Cards().SetDefault(cmd.Context(), id)
		},
	}

	var yes bool
	remove := &cobra.Command{
		Use:   "delete CARD_ID",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "card")
			if err != nil {
				return err
			}
			if !yes {
				ok, err := c.prompt.confirm(fmt.Sprintf("Delete card %d? This cannot be undone.", id))
				if err != nil || !ok {
					return err
				}
			}
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Cards().Delete(cmd.Context(), id)
		},
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	block := &cobra.Command{
		Use:   "block CARD_ID",
		Short: "Block a card (not available yet)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "card")
			if err != nil {
				return err
			}
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Cards().Block(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, add, setDefault, remove, block)
	return cmd
}

func (c *cli) journeysCmd() *cobra.Command {
	var status, from, to string
	cmd := &cobra.Command{
		Use:   "journeys",
		Short: "Journey history with filters and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange(from, to)
			if err != nil {
				return err
			}
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			f := filter.JourneyFilter{Status: models.JourneyStatus(strings.ToUpper(status)), Range: r}
			return a.Journeys().Show(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "IN_PROGRESS, COMPLETED or CANCELLED")
	cmd.Flags().StringVar(&from, "from", "", "Earliest tap-in day")
	cmd.Flags().StringVar(&to, "to", "", "Latest tap-in day, inclusive")
	return cmd
}

func (c *cli) transactionsCmd() *cobra.Command {
	var txType, from, to string
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Transaction history with filters and totals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange(from, to)
			if err != nil {
				return err
			}
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			f := filter.TransactionFilter{Type: models.TransactionType(strings.ToUpper(txType)), Range: r}
			return a.Transactions().Show(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&txType, "type", "", "TOP_UP, PAYMENT, REFUND or ADJUSTMENT")
	cmd.Flags().StringVar(&from, "from", "", "Earliest transaction day")
	cmd.Flags().StringVar(&to, "to", "", "Latest transaction day, inclusive")
	return cmd
}

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Profile().Show(cmd.Context())
		},
	}

	var changes models.ProfileUpdate
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name, email or phone; omitted fields keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Profile().Update(cmd.Context(), changes)
		},
	}
	update.Flags().StringVar(&changes.FirstName, "first-name", "", "First name")
	update.Flags().StringVar(&changes.LastName, "last-name", "", "Last name")
	update.Flags().StringVar(&changes.Email, "email", "", "Email")
	update.Flags().StringVar(&changes.PhoneNumber, "phone", "", "Phone number")

	password := &cobra.Command{
		Use:   "password",
		Short: "Change the password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			var form views.PasswordForm
			if form.Current, err = c.prompt.password("Current password: "); err != nil {
				return err
			}
			if form.New, err = c.prompt.password("New password: "); err != nil {
				return err
			}
			if form.Confirm, err = c.prompt.password("Confirm new password: "); err != nil {
				return err
			}
			return a.Profile().ChangePassword(cmd.Context(), form)
		},
	}

	cmd.AddCommand(show, update, password)
	return cmd
}

func (c *cli) stationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Station reference data",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Stations().List(cmd.Context())
		},
	}
	show := &cobra.Command{
		Use:   "show STATION_ID",
		Short: "Show one station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "station")
			if err != nil {
				return err
			}
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Stations().Show(cmd.Context(), id)
		},
	}
	cmd.AddCommand(list, show)
	return cmd
}
