package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/pkg/jwtclaims"
)

func LoginCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", os.Getenv("TENDER_PASSWORD"), "Account password (default: $TENDER_PASSWORD)")
	fs.Parse(args)

	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	res := p.session.Login(ctx, *email, *password)
	if !res.Success {
		return errors.New(res.Error)
	}
	fmt.Fprintf(p.out, "Signed in as %s (%s)\n", res.User.Email, res.User.Role)
	return nil
}

func RegisterCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", os.Getenv("TENDER_PASSWORD"), "Account password (default: $TENDER_PASSWORD)")
	role := fs.String("role", string(domain.RoleContractor), "ADMIN or CONTRACTOR")
	fs.Parse(args)

	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	res := p.session.Register(ctx, *email, *password, domain.Role(*role))
	if !res.Success {
		return errors.New(res.Error)
	}
	fmt.Fprintf(p.out, "Account %s created. Run `tenderctl login` to sign in.\n", *email)
	return nil
}

func LogoutCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	fs.Parse(args)

	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	p.session.Logout(ctx)
	fmt.Fprintln(p.out, "Signed out")
	return nil
}

func WhoamiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	format := fs.String("format", "text", "Output format (text, json)")
	fs.Parse(args)

	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	snap := p.session.Snapshot()
	info := sessionInfo{State: snap.State.String()}
	if snap.User != nil {
		info.Email = snap.User.Email
		info.Role = string(snap.User.Role)
	}
	if exp, ok := jwtclaims.ExpiresAt(snap.Token); ok {
		info.ExpiresAt = exp.Format(time.RFC3339)
		info.Expired = jwtclaims.IsExpired(snap.Token, time.Now())
	}

	if *format == "json" {
		return printJSON(p.out, info)
	}
	printKeyValue(p.out, "State", info.State)
	if info.Email != "" {
		printKeyValue(p.out, "Email", info.Email)
		printKeyValue(p.out, "Role", info.Role)
	}
	if info.ExpiresAt != "" {
		expires := info.ExpiresAt
		if info.Expired {
			expires += " (expired)"
		}
		printKeyValue(p.out, "Token expires", expires)
	}
	return nil
}

type sessionInfo struct {
	State     string `json:"state"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	Expired   bool   `json:"expired,omitempty"`
}
