// Package cli implements the jobtracker admin command line.
//
// Each invocation runs one command against the services built by
// server.NewApp:
//   - migrate: apply schema migrations
//   - register [--admin] / login: create a user, check credentials and print a token
//   - whoami: resolve an access token to its user
//   - users / user: list users or show one
//   - apps / app / add-app: list, show or record job applications
//   - set-status / delete-app: change or remove an application by id
//
// Interactive prompts read from the App's input; passwords are read from
// the terminal without echo.
package cli
