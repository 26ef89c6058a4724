package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/pdl"
)

var validate = validator.New()

const (
	ValidNameStep      = "valid_name"
	ValidEmailStep     = "valid_email"
	ExcludeDomainsStep = "exclude_domains"
	ExcludeFileStep    = "exclude_file"
)

type validNameFilter struct{}

// NewValidName creates a filter that removes people without a display name.
func NewValidName() Filter {
	return &validNameFilter{}
}

func (f *validNameFilter) Name() string { return ValidNameStep }

func (f *validNameFilter) Disable(string) {}

func (f *validNameFilter) IsEnabled() bool { return true }

func (f *validNameFilter) Validate(*Config) error { return nil }

func (f *validNameFilter) Apply(_ context.Context, deps Deps, p *pdl.People) (*pdl.People, Step, error) {
	initial := p.Len()
	dropped := p.Keep(func(person *pdl.Person) bool {
		return person.DisplayName() != ""
	})
	if len(dropped) > 0 {
		deps.Logger.Debug("dropping people without a name",
			zap.Strings("dropped_people", pdl.IDs(dropped)),
			zap.Int("people_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

type validEmailFilter struct{}

// NewValidEmail creates a filter that removes people without a usable contact email.
func NewValidEmail() Filter {
	return &validEmailFilter{}
}

func (f *validEmailFilter) Name() string { return ValidEmailStep }

func (f *validEmailFilter) Disable(string) {}

func (f *validEmailFilter) IsEnabled() bool { return true }

func (f *validEmailFilter) Validate(*Config) error { return nil }

func (f *validEmailFilter) Apply(_ context.Context, deps Deps, p *pdl.People) (*pdl.People, Step, error) {
	initial := p.Len()
	dropped := p.Keep(func(person *pdl.Person) bool {
		return person.ContactEmail() != ""
	})
	if len(dropped) > 0 {
		deps.Logger.Debug("dropping people without a valid email",
			zap.Strings("dropped_people", pdl.IDs(dropped)),
			zap.Int("people_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

type excludeDomainsFilter struct {
	disabled bool
	reason   string
	domains  []string
}

// NewExcludeDomains creates a filter that removes people whose contact email
// belongs to a configured domain or one of its subdomains.
func NewExcludeDomains() Filter {
	return &excludeDomainsFilter{}
}

func (f *excludeDomainsFilter) Name() string { return ExcludeDomainsStep }

func (f *excludeDomainsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludeDomainsFilter) IsEnabled() bool { return !f.disabled }

func (f *excludeDomainsFilter) Validate(cfg *Config) error {
	f.domains = nil
	if cfg == nil {
		return nil
	}
	for _, domain := range cfg.ExcludeDomains {
		domain = strings.ToLower(strings.TrimLeft(strings.TrimSpace(domain), "@."))
		if domain == "" {
			continue
		}
		if err := validate.Var(domain, "fqdn"); err != nil {
			return fmt.Errorf("invalid domain %q: %w", domain, err)
		}
		f.domains = append(f.domains, domain)
	}
	return nil
}

func (f *excludeDomainsFilter) Apply(_ context.Context, deps Deps, p *pdl.People) (*pdl.People, Step, error) {
	initial := p.Len()
	if len(f.domains) == 0 {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	dropped := p.Keep(func(person *pdl.Person) bool {
		return !f.matches(emailDomain(person.ContactEmail()))
	})
	if len(dropped) > 0 {
		deps.Logger.Info("excluding people by email domain",
			zap.Strings("excluded_domains", f.domains),
			zap.Strings("excluded_people", pdl.IDs(dropped)),
			zap.Int("people_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

func (f *excludeDomainsFilter) matches(domain string) bool {
	if domain == "" {
		return false
	}
	for _, excluded := range f.domains {
		if domain == excluded || strings.HasSuffix(domain, "."+excluded) {
			return true
		}
	}
	return false
}

func (f *excludeDomainsFilter) Status() Status {
	details := map[string]string{}
	if len(f.domains) > 0 {
		details["domains"] = strings.Join(f.domains, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	disabled bool
	reason   string
	path     string
}

// NewExcludeFile creates a filter that removes people listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return ExcludeFileStep }

func (f *excludeFileFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludeFileFilter) IsEnabled() bool { return !f.disabled }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, p *pdl.People) (*pdl.People, Step, error) {
	initial := p.Len()
	if f.path == "" {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	excluded, err := LoadExcluded(f.path)
	if err != nil {
		return p, Step{}, fmt.Errorf("getting excluded people from file: %w", err)
	}

	emails := make(map[string]struct{}, excluded.Len())
	for _, email := range excluded.Emails() {
		emails[strings.ToLower(email)] = struct{}{}
	}
	ids := make(map[string]struct{}, excluded.Len())
	for _, id := range excluded.IDs() {
		ids[id] = struct{}{}
	}

	dropped := p.Keep(func(person *pdl.Person) bool {
		if _, ok := ids[person.ID]; ok && person.ID != "" {
			return false
		}
		_, ok := emails[strings.ToLower(person.ContactEmail())]
		return !ok
	})
	if len(dropped) > 0 {
		deps.Logger.Info("excluding people based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_people", pdl.IDs(dropped)),
			zap.Int("people_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
