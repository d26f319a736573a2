package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/collegeportal/internal/client/models"
	"github.com/dmitrijs2005/collegeportal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password and an optional avatar URL and
// creates the account. A successful registration also signs the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	avatar, err := getSimpleText(a.reader, "Avatar URL (optional)", a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Register(ctx, models.Registration{
		Name:     name,
		Email:    email,
		Password: string(password),
		Avatar:   avatar,
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", u.Name))
	return nil
}

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s", u.Name))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Snapshot()
	if !s.Authenticated() {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", s.User.Name, s.User.Email))
	return nil
}

// Profile shows the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	return a.protected(ctx, "/profile", func(context.Context) error {
		u := a.session.Snapshot().User
		if u == nil {
			return nil
		}
		printUser(*u)
		return nil
	})
}

// clearAnswer empties an optional profile field.
const clearAnswer = "-"

// EditProfile prompts for each editable field, keeping the current value on
// an empty answer, and sends only what changed. Optional fields are emptied
// with clearAnswer.
func (a *App) EditProfile(ctx context.Context) error {
	return a.protected(ctx, "/profile/edit", func(ctx context.Context) error {
		u := a.session.Snapshot().User
		if u == nil {
			return nil
		}

		var upd models.ProfileUpdate
		fields := []struct {
			prompt   string
			cur      string
			dst      **string
			optional bool
		}{
			{"Name", u.Name, &upd.Name, false},
			{"Email", u.Email, &upd.Email, false},
			{"Address", u.Address, &upd.Address, true},
			{"University", u.University, &upd.University, true},
			{"Avatar URL", u.Avatar, &upd.Avatar, true},
		}
		for _, f := range fields {
			prompt := f.prompt
			if f.optional && f.cur != "" {
				prompt += " ('" + clearAnswer + "' to clear)"
			}
			v, err := GetTextWithDefault(a.reader, prompt, f.cur, a.out)
			if err != nil {
				return err
			}
			if f.optional && v == clearAnswer {
				v = ""
			}
			if v != f.cur {
				v := v
				*f.dst = &v
			}
		}

		if upd.Empty() {
			printlnFn("Nothing changed")
			return nil
		}

		updated, err := a.session.UpdateProfile(ctx, upd)
		if err != nil {
			return err
		}
		printlnFn("Profile updated")
		printUser(updated)
		return nil
	})
}

func printUser(u models.User) {
	printlnFn("Name:      ", u.Name)
	printlnFn("Email:     ", u.Email)
	if u.University != "" {
		printlnFn("University:", u.University)
	}
	if u.Address != "" {
		printlnFn("Address:   ", u.Address)
	}
	if u.Avatar != "" {
		printlnFn("Avatar:    ", u.Avatar)
	}
}
