package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
)

func (a *App) register(ctx context.Context, admin bool) error {
	in := services.RegisterUserInput{IsAdmin: admin}
	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter username", &in.Username},
		{"Enter first name", &in.FirstName},
		{"Enter last name", &in.LastName},
		{"Enter email", &in.Email},
		{"Enter GitHub link (optional)", &in.GithubLink},
		{"Enter LinkedIn link (optional)", &in.LinkedinLink},
	}
	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.text, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	in.Password = pw

	u, err := a.users.Register(ctx, in)
	if err != nil {
		return err
	}
	if u.IsAdmin {
		fmt.Fprintf(a.out, "Registered %s (admin)\n", u.Username)
		return nil
	}
	fmt.Fprintf(a.out, "Registered %s\n", u.Username)
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.users.Login(ctx, username, pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n%s\n", s.User.Username, s.AccessToken)
	return nil
}

func (a *App) whoami(ctx context.Context, token string) error {
	u, err := a.users.UserFromToken(ctx, token)
	if err != nil {
		return err
	}
	printUser(a, u)
	return nil
}

func (a *App) listUsers(ctx context.Context) error {
	list, err := a.users.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tNAME\tEMAIL\tADMIN")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%t\n", u.Username, u.FirstName, u.LastName, u.Email, u.IsAdmin)
	}
	return w.Flush()
}

func (a *App) showUser(ctx context.Context, username string) error {
	u, err := a.users.Get(ctx, username)
	if err != nil {
		return err
	}
	printUser(a, u)
	return nil
}

func printUser(a *App, u *models.PublicUser) {
	fmt.Fprintf(a.out, "Username:  %s\n", u.Username)
	fmt.Fprintf(a.out, "Name:      %s %s\n", u.FirstName, u.LastName)
	fmt.Fprintf(a.out, "Email:     %s\n", u.Email)
	if u.GithubLink != "" {
		fmt.Fprintf(a.out, "GitHub:    %s\n", u.GithubLink)
	}
	if u.LinkedinLink != "" {
		fmt.Fprintf(a.out, "LinkedIn:  %s\n", u.LinkedinLink)
	}
	fmt.Fprintf(a.out, "Admin:     %t\n", u.IsAdmin)
}
