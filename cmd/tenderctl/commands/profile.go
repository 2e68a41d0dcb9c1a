package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

func ProfileCommand(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tenderctl profile <admin|contractor> [options]")
	}

	switch args[0] {
	case "admin":
		return adminProfile(ctx, args[1:])
	case "contractor":
		return contractorProfile(ctx, args[1:])
	default:
		return fmt.Errorf("unknown profile kind: %s", args[0])
	}
}

func adminProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile admin", flag.ExitOnError)
	var prof domain.AdminProfile
	fs.StringVar(&prof.FullName, "name", "", "Full name")
	fs.StringVar(&prof.FullSupervisorName, "supervisor", "", "Supervisor's full name")
	fs.StringVar(&prof.Email, "email", "", "Contact email")
	fs.StringVar(&prof.PhoneNumber, "phone", "", "Phone number")
	fs.StringVar(&prof.JobTitle, "title", "", "Job title")
	fs.StringVar(&prof.DivisionName, "division", "", "Division name")
	fs.Parse(args)

	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.session.Authorize(domain.RoleAdmin); err != nil {
		return err
	}
	if err := p.dashboard.CreateAdminProfile(ctx, prof); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "Administrator profile saved")
	return nil
}

func contractorProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile contractor", flag.ExitOnError)
	var prof domain.ContractorProfile
	fs.StringVar(&prof.ContractorName, "name", "", "Short company name")
	fs.StringVar(&prof.ContractorFullName, "full-name", "", "Registered company name")
	fs.StringVar(&prof.ContractorDescription, "description", "", "Company description")
	fs.StringVar(&prof.IdentificationNumber, "id-number", "", "Identification number")
	fs.StringVar(&prof.Email, "email", "", "Contact email")
	fs.StringVar(&prof.PhoneNumber, "phone", "", "Phone number")
	fs.StringVar(&prof.Inn, "inn", "", "INN")
	fs.StringVar(&prof.Kpp, "kpp", "", "KPP")
	fs.StringVar(&prof.FoundedAt, "founded", "", "Foundation date")
	fs.StringVar(&prof.Address, "address", "", "Legal address")
	fs.StringVar(&prof.TaxForm, "tax-form", "", "Tax form")
	fs.StringVar(&prof.OkvedCode, "okved", "", "Primary OKVED code")
	fs.Parse(args)

	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.session.Authorize(domain.RoleContractor); err != nil {
		return err
	}
	if err := p.dashboard.CreateContractorProfile(ctx, prof); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "Contractor profile saved")
	return nil
}
