package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"text/tabwriter"

	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out       io.Writer
	log       *logrus.Logger
	validator *validate.Validator
	store     storage.Store
	session   usecase.SessionUsecase
	admin     usecase.AdminUsecase
}

type loginArgs struct {
	Email string `flag:"email" validate:"required,email"`
}

type userArgs struct {
	Email string `flag:"email" validate:"required,email"`
	User  string `flag:"user" validate:"required"`
}

type roleArgs struct {
	Email string `flag:"email" validate:"required,email"`
	User  string `flag:"user" validate:"required"`
	Role  string `flag:"role" validate:"required,oneof=student admin"`
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  stats -email EMAIL                              - show dashboard stats")
	fmt.Fprintln(cli.out, "  users -email EMAIL                              - list users")
	fmt.Fprintln(cli.out, "  setrole -email EMAIL -user ID -role ROLE        - set a user's role (student|admin)")
	fmt.Fprintln(cli.out, "  activate -email EMAIL -user ID                  - activate a user")
	fmt.Fprintln(cli.out, "  deactivate -email EMAIL -user ID                - deactivate a user")
	fmt.Fprintln(cli.out, "  deleteuser -email EMAIL -user ID                - delete a user")
	fmt.Fprintln(cli.out, "The admin password is prompted for every command.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cmd := flag.NewFlagSet(args[1], flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	email := cmd.String("email", "", "The admin's email. The password will be prompted next.")
	user := cmd.String("user", "", "The target user's id.")
	role := cmd.String("role", "", "The new role: student or admin.")

	switch args[1] {
	case "stats", "users", "setrole", "activate", "deactivate", "deleteuser":
	default:
		cli.printUsage()
		return errHelp
	}
	if err := cmd.Parse(args[2:]); err != nil {
		return errHelp
	}

	var req any
	switch args[1] {
	case "stats", "users":
		req = loginArgs{Email: *email}
	case "setrole":
		req = roleArgs{Email: *email, User: *user, Role: *role}
	default:
		req = userArgs{Email: *email, User: *user}
	}
	if err := cli.validator.Struct(req); err != nil {
		fmt.Fprintln(cli.out, err)
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	if err := cli.login(ctx, *email); err != nil {
		return err
	}
	defer func() {
		if err := cli.session.EndSession(ctx, cli.store); err != nil {
			cli.log.WithError(err).Warn("failed to end session")
		}
	}()

	id := lessonapi.ID(*user)
	switch args[1] {
	case "stats":
		return cli.stats(ctx)
	case "users":
		return cli.users(ctx)
	case "setrole":
		return cli.update(ctx, id, entity.AdminUpdateUserRequest{Role: role})
	case "activate", "deactivate":
		active := args[1] == "activate"
		return cli.update(ctx, id, entity.AdminUpdateUserRequest{IsActive: &active})
	default:
		if err := cli.admin.DeleteUser(ctx, cli.store, id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "user %s deleted\n", id)
		return nil
	}
}

func (cli *commandLine) login(ctx context.Context, email string) error {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		return errHelp
	}

	p, err := cli.session.Authenticate(ctx, cli.store, entity.LoginRequest{Email: email, Password: string(pwd)})
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if !p.IsAdmin() {
		return usecase.ErrForbidden
	}
	cli.log.WithField("email", p.Email).Debug("signed in")
	return nil
}

func (cli *commandLine) stats(ctx context.Context) error {
	s, err := cli.admin.Stats(ctx, cli.store)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "users\t%d\n", s.TotalUsers)
	fmt.Fprintf(w, "active users\t%d\n", s.ActiveUsers)
	fmt.Fprintf(w, "lessons\t%d\n", s.TotalLessons)
	fmt.Fprintf(w, "completions\t%d\n", s.TotalCompletions)
	fmt.Fprintf(w, "average progress\t%.1f%%\n", s.AverageProgress)
	return w.Flush()
}

func (cli *commandLine) users(ctx context.Context) error {
	users, err := cli.admin.Users(ctx, cli.store)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.IsActive)
	}
	return w.Flush()
}

func (cli *commandLine) update(ctx context.Context, id lessonapi.ID, req entity.AdminUpdateUserRequest) error {
	if err := cli.validator.Struct(req); err != nil {
		return err
	}
	p, err := cli.admin.UpdateUser(ctx, cli.store, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "user %s: role=%s active=%t\n", p.ID, p.Role, p.IsActive)
	return nil
}
