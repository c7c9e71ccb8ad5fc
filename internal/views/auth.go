package views

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"transitpay/internal/format"
	"transitpay/internal/models"
	"transitpay/internal/notice"
	"transitpay/internal/session"
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 8

var errInvalidLoginResponse = errors.New("invalid response from server")

// AuthController covers the login and register screens plus the session commands.
type AuthController struct {
	Deps
}

// NewAuthController returns the controller.
func NewAuthController(d Deps) *AuthController {
	return &AuthController{Deps: d}
}

// Login signs in and persists token and user. An existing session is kept and no request is
// made.
func (c *AuthController) Login(ctx context.Context, email, password string) error {
	if c.Session.IsAuthenticated(ctx) {
		msg := "Already logged in. Log out first to switch accounts."
		if user, _ := c.Session.User(ctx); user != nil {
			msg = "Already logged in as " + user.Email + ". Log out first to switch accounts."
		}
		c.notify(notice.Info, msg)
		return nil
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return c.actionFailed("login", invalid("email", "Email and password are required"))
	}

	res, err := c.API.Auth.Login(ctx, email, password)
	if err == nil && (res.Token == "" || res.User == nil) {
		err = errInvalidLoginResponse
	}
	if err != nil {
		return c.actionFailed("login", err)
	}
	if err := c.Session.Save(ctx, res.Token, *res.User); err != nil {
		return err
	}

	c.logger().Info("logged in", zap.Int64("user_id", res.User.ID))
	c.notify(notice.Success, "Login successful!")
	c.printf("Welcome, %s.\n", res.User.FullName())
	return nil
}

// RegisterForm is the registration input. Confirm must repeat Password.
type RegisterForm struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
	Confirm     string
}

// Validate checks the form without touching the backend.
func (f RegisterForm) Validate() error {
	if f.Password != f.Confirm {
		return invalid("password", "Passwords do not match!")
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return invalid("password", "Password must be at least 8 characters long!")
	}
	return nil
}

// Register creates an account. The new user still has to log in.
func (c *AuthController) Register(ctx context.Context, form RegisterForm) error {
	if c.Session.IsAuthenticated(ctx) {
		c.notify(notice.Info, "Already logged in. Log out first to create another account.")
		return nil
	}
	if err := form.Validate(); err != nil {
		return c.actionFailed("register", err)
	}

	res, err := c.API.Auth.Register(ctx, models.RegisterRequest{
		FirstName:   strings.TrimSpace(form.FirstName),
		LastName:    strings.TrimSpace(form.LastName),
		Email:       strings.TrimSpace(form.Email),
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		Password:    form.Password,
	})
	if err != nil {
		return c.actionFailed("register", err)
	}

	c.notify(notice.Success, "Account created successfully! Please log in.")
	if res.User != nil {
		c.printf("Created account #%d for %s.\n", res.User.ID, res.User.Email)
	}
	return nil
}

// Logout clears the session. Logging out twice is not an error.
func (c *AuthController) Logout(ctx context.Context) error {
	if err := c.Session.Clear(ctx); err != nil {
		return err
	}
	c.notify(notice.Success, "Logged out.")
	return nil
}

// Whoami prints the cached user and what the token says about itself.
func (c *AuthController) Whoami(ctx context.Context) error {
	if !c.Session.IsAuthenticated(ctx) {
		return session.ErrNotAuthenticated
	}
	user, err := c.Session.User(ctx)
	if err != nil {
		return err
	}
	if user != nil {
		c.printf("%s <%s> (user #%d", user.FullName(), user.Email, user.ID)
		if user.Role != "" {
			c.printf(", %s", user.Role)
		}
		c.printf(")\n")
	}

	token, err := c.Session.Token(ctx)
	if err != nil {
		return err
	}
	info, err := session.DescribeToken(token)
	if err != nil {
		c.printf("Token: opaque\n")
		return nil
	}
	if info.Subject != "" {
		c.printf("Token subject: %s\n", info.Subject)
	}
	if info.Role != "" {
		c.printf("Token role: %s\n", info.Role)
	}
	if !info.IssuedAt.IsZero() {
		c.printf("Issued: %s\n", format.DateTime(info.IssuedAt))
	}
	if !info.ExpiresAt.IsZero() {
		c.printf("Expires: %s (%s)\n", format.DateTime(info.ExpiresAt), format.Relative(info.ExpiresAt, c.now()))
	}
	return nil
}
