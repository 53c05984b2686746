package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/melodeck/internal/client/models"
	"github.com/dmitrijs2005/melodeck/internal/client/nav"
	"github.com/dmitrijs2005/melodeck/internal/client/validation"
	"github.com/dmitrijs2005/melodeck/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for email and password, checks the form and authenticates.
// Form defects and failed calls are printed and returned.
func (a *App) Login(ctx context.Context) error {
	a.Navigate(loginRoute)
	defer a.Navigate(nav.RootRoute)

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := validation.Form{
		validation.LoginEmail:    email,
		validation.LoginPassword: string(password),
	}
	if err := validation.RequireFields(form, validation.LoginEmail, validation.LoginPassword); err != nil {
		a.say(err.Error())
		return err
	}
	if err := validation.Validate(form, validation.LoginChain()...); err != nil {
		a.say(err.Error())
		return err
	}

	if _, err := a.authService.Login(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		a.say(err.Error())
		return err
	}

	a.say("You are now logged in!")
	return nil
}

// Register shows the available plans, prompts for the account details and
// creates the account. The session is not changed; the user confirms the
// email and logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	a.Navigate(registerRoute)
	defer a.Navigate(nav.RootRoute)

	if err := a.Plans(ctx); err != nil {
		a.logger.Debug(ctx, "plans not listed", "error", err)
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	planText, err := getSimpleText(a.reader, "Plan ID", a.out)
	if err != nil {
		return err
	}

	form := validation.Form{
		validation.RegisterEmail:    email,
		validation.RegisterPassword: string(password),
		validation.RegisterConfirm:  string(confirm),
		validation.RegisterPlanID:   planText,
	}
	if err := validation.Validate(form, validation.RegisterChain(a.config.StrictPasswords)...); err != nil {
		a.say(err.Error())
		return err
	}

	planID, err := strconv.Atoi(planText)
	if err != nil {
		err = fmt.Errorf("%w: %q", common.ErrInvalidPlanID, planText)
		a.say(err.Error())
		return err
	}

	reg := models.Registration{Email: email, Password: string(password), PlanID: planID}
	if _, err := a.authService.Register(ctx, reg); err != nil {
		a.say(err.Error())
		return err
	}

	a.say("Please confirm your email.")
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.say(err.Error())
		return err
	}
	a.say("You are now logged out!")
	return nil
}

// Plans prints the plans offered on registration.
func (a *App) Plans(ctx context.Context) error {
	plans, err := a.authService.Plans(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		a.say("No plans available")
		return nil
	}

	a.say("Available plans:")
	for _, p := range plans {
		fmt.Fprintf(a.out, "  %d  %s (playlists up to %d)\n", p.ID, p.Name, p.PlaylistSize)
	}
	return nil
}

// WhoAmI prints the current user. When the record carries a token, its
// subject and expiry are shown as well; the signature is not checked.
func (a *App) WhoAmI(context.Context) error {
	u, ok := a.authService.CurrentUser()
	if !ok {
		a.say("Not logged in")
		return nil
	}

	a.say("Email: " + u.Email())
	if id, ok := u.ID(); ok {
		fmt.Fprintf(a.out, "ID: %d\n", id)
	}

	tok := u.Token()
	if tok == "" {
		return nil
	}
	info, err := describeToken(tok)
	if err != nil {
		a.say("Token: unreadable")
		return err
	}
	a.say(info)
	return nil
}

var errNoClaims = errors.New("token has no claims")

func describeToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return "", err
	}

	var parts []string
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		parts = append(parts, "subject "+sub)
	} else if raw, ok := claims["sub"]; ok {
		parts = append(parts, fmt.Sprintf("subject %v", raw))
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		parts = append(parts, "expires "+exp.UTC().Format(time.RFC3339))
	}
	if len(parts) == 0 {
		return "", errNoClaims
	}
	return "Token: " + strings.Join(parts, ", "), nil
}
