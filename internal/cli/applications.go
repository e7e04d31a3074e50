package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/optx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
)

const dateLayout = "2006-01-02"

func (a *App) listApps(ctx context.Context, username string) error {
	list, err := a.apps.List(ctx, username)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCOMPANY\tROLE\tSTATUS\tLINK")
	for _, app := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", app.ID, app.DateOfApplication.Format(dateLayout),
			app.CompanyName, app.Role, app.Status, app.JobPostLink)
	}
	return w.Flush()
}

func (a *App) showApp(ctx context.Context, link string) error {
	app, err := a.apps.Get(ctx, link)
	if err != nil {
		return err
	}
	printApp(a, app)
	return nil
}

func (a *App) addApp(ctx context.Context, username string) error {
	in := services.CreateApplicationInput{UserID: username}
	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter role", &in.Role},
		{"Enter company name", &in.CompanyName},
		{"Enter job post link", &in.JobPostLink},
		{"Enter location (optional)", &in.Location},
		{"Enter status (optional)", &in.Status},
	}
	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.text, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	date, err := GetSimpleText(a.reader, "Enter date of application YYYY-MM-DD (empty for today)", a.out)
	if err != nil {
		return err
	}
	if date != "" {
		in.DateOfApplication, err = time.Parse(dateLayout, date)
		if err != nil {
			return common.InvalidInput("Invalid date: %s", date)
		}
	}

	app, err := a.apps.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created application %d\n", app.ID)
	return nil
}

func (a *App) setStatus(ctx context.Context, rawID, status string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	app, err := a.apps.Update(ctx, id, models.ApplicationPatch{Status: optx.Some(status)})
	if err != nil {
		return err
	}
	printApp(a, app)
	return nil
}

func (a *App) deleteApp(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := a.apps.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted application %d\n", id)
	return nil
}

func printApp(a *App, app *models.Application) {
	fmt.Fprintf(a.out, "ID:       %d\n", app.ID)
	fmt.Fprintf(a.out, "Role:     %s\n", app.Role)
	fmt.Fprintf(a.out, "Company:  %s\n", app.CompanyName)
	fmt.Fprintf(a.out, "Link:     %s\n", app.JobPostLink)
	fmt.Fprintf(a.out, "Location: %s\n", app.Location)
	fmt.Fprintf(a.out, "Applied:  %s\n", app.DateOfApplication.Format(dateLayout))
	fmt.Fprintf(a.out, "Status:   %s\n", app.Status)
	fmt.Fprintf(a.out, "Owner:    %s\n", app.UserID)
}
