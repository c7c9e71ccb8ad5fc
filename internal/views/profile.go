package views

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"transitpay/internal/format"
	"transitpay/internal/models"
	"transitpay/internal/notice"
)

// ProfileController shows and edits the user profile.
type ProfileController struct {
	Deps
}

// NewProfileController returns the controller.
func NewProfileController(d Deps) *ProfileController {
	return &ProfileController{Deps: d}
}

// Show renders the profile fetched from the backend.
func (c *ProfileController) Show(ctx context.Context) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	user, err := c.API.Users.Profile(ctx, userID)
	if err != nil {
		c.notify(notice.Danger, "Failed to load profile: "+err.Error())
		return c.loadFailed("profile", err)
	}
	c.render(user)
	return nil
}

func (c *ProfileController) render(u models.User) {
	tw := newTable(c.Out)
	row := func(label, value string) {
		if value == "" {
			value = format.Placeholder
		}
		fmt.Fprintf(tw, "%s\t%s\n", label, value)
	}
	row("Name", u.FullName())
	row("Email", u.Email)
	row("Phone", u.PhoneNumber)
	row("Role", u.Role)
	row("Balance", format.Currency(u.Balance))
	row("Member since", format.Date(u.CreatedAt.Time))
	tw.Flush()
}

// Update changes the profile. Empty fields keep their current value. The session's cached
// user is replaced with the backend's answer.
func (c *ProfileController) Update(ctx context.Context, changes models.ProfileUpdate) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	current, err := c.API.Users.Profile(ctx, userID)
	if err != nil {
		return c.actionFailed("update profile", err)
	}

	update := models.ProfileUpdate{
		FirstName:   pick(changes.FirstName, current.FirstName),
		LastName:    pick(changes.LastName, current.LastName),
		Email:       pick(changes.Email, current.Email),
		PhoneNumber: pick(changes.PhoneNumber, current.PhoneNumber),
	}
	updated, err := c.API.Users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return c.actionFailed("update profile", err)
	}
	if err := c.Session.SetUser(ctx, updated); err != nil {
		return err
	}
	c.notify(notice.Success, "Profile updated successfully!")
	c.render(updated)
	return nil
}

func pick(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// PasswordForm is the change-password input.
type PasswordForm struct {
	Current string
	New     string
	Confirm string
}

// Validate checks the form without touching the backend.
func (f PasswordForm) Validate() error {
	if f.New != f.Confirm {
		return invalid("newPassword", "New passwords do not match!")
	}
	if utf8.RuneCountInString(f.New) < MinPasswordLength {
		return invalid("newPassword", "New password must be at least 8 characters long!")
	}
	if f.Current == f.New {
		return invalid("newPassword", "New password must be different from current password!")
	}
	return nil
}

// ChangePassword validates form and submits it.
func (c *ProfileController) ChangePassword(ctx context.Context, form PasswordForm) error {
	userID, err := c.userID(ctx)
	if err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return c.actionFailed("change password", err)
	}
	if err := c.API.Users.ChangePassword(ctx, userID, form.Current, form.New); err != nil {
		return c.actionFailed("change password", err)
	}
	c.notify(notice.Success, "Password changed successfully!")
	return nil
}
