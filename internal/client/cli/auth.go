package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
	"github.com/dmitrijs2005/resumeanalyzer/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errEmptyField = errors.New("all fields are required")

// Login switches to the login form when needed, prompts for credentials and
// authenticates. Failures are reported through notifications.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, models.AuthLogin)
}

// Register switches to the register form when needed, prompts for a user
// name, email and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, models.AuthRegister)
}

func (a *App) authenticate(ctx context.Context, mode models.AuthMode) error {
	want := workflow.ViewLogin
	if mode == models.AuthRegister {
		want = workflow.ViewRegister
	}
	if a.view() != want {
		if err := a.core.ToggleAuthMode(); err != nil {
			return err
		}
	}

	creds, err := a.promptCredentials(mode)
	if err != nil {
		if errors.Is(err, errEmptyField) {
			fmt.Fprintln(a.out, "All fields are required.")
		}
		return err
	}
	defer common.WipeByteArray(creds.Password)

	if err := a.core.Authenticate(ctx, mode, creds); err != nil {
		a.log.Debug(ctx, "authenticate failed", "mode", mode, "error", err)
		return err
	}
	if a.view() == workflow.ViewDashboard {
		_ = a.List(ctx)
	}
	return nil
}

func (a *App) promptCredentials(mode models.AuthMode) (models.Credentials, error) {
	var creds models.Credentials

	name, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return creds, err
	}
	creds.Username = name

	if mode == models.AuthRegister {
		email, err := getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return creds, err
		}
		creds.Email = email
	}

	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return creds, err
	}
	creds.Password = pw

	if creds.Username == "" || len(creds.Password) == 0 || (mode == models.AuthRegister && creds.Email == "") {
		common.WipeByteArray(pw)
		return creds, errEmptyField
	}
	return creds, nil
}

// Toggle flips between the login and register forms.
func (a *App) Toggle(context.Context) error {
	if err := a.core.ToggleAuthMode(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Switched to %s.\n", a.view())
	return nil
}

// Logout ends the session and forgets the persisted token.
func (a *App) Logout(ctx context.Context) error {
	a.core.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
