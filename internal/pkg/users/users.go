package users

import (
	"strings"

	"github.com/badoux/checkmail"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/persistence"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

//AnonymousSubject marks calls made with authentication disabled
const AnonymousSubject = "anonymous"

// Service resolves auth subjects to tenant users
type Service struct {
	users  persistence.Users
	admins map[string]bool
}

//NewService creates the user directory service. Subjects listed in the
//users.admins setting get the admin role on first sight.
func NewService(users persistence.Users) (*Service, error) {
	if users == nil {
		return nil, errors.New("No user store provided")
	}
	res := &Service{users: users, admins: make(map[string]bool)}
	for _, s := range strings.Split(cmdapp.Config.GetString("users.admins"), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			res.admins[s] = true
		}
	}
	return res, nil
}

//Resolve returns the tenant user of the auth subject, creating the profile
//on first sight. An unknown subject becomes a clinician, the anonymous
//subject an admin.
func (s *Service) Resolve(tenant, subject string) (*domain.User, error) {
	if subject == "" || subject == AnonymousSubject {
		return s.upsert(tenant, AnonymousSubject, "anonymous@example.com", domain.RoleAdmin)
	}
	role := domain.RoleClinician
	if s.admins[subject] {
		role = domain.RoleAdmin
	}
	return s.upsert(tenant, subject, guestEmail(subject), role)
}

func (s *Service) upsert(tenant, subject, email string, role domain.Role) (*domain.User, error) {
	existing, err := s.users.GetBySubject(tenant, subject)
	if err != nil {
		return nil, errors.Wrap(err, "Can't get user")
	}
	if existing != nil {
		return existing, nil
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, errors.Wrap(err, "Wrong email "+email)
	}
	user := &domain.User{ID: uuid.New().String(), Email: email, Role: role, TenantID: tenant}
	if err := s.users.SaveBySubject(subject, user); err != nil {
		return nil, errors.Wrap(err, "Can't save user")
	}
	cmdapp.Log.Infof("Created %s user %s", role, user.ID)
	return user, nil
}

//guestEmail derives a placeholder address from the subject
func guestEmail(subject string) string {
	short := strings.TrimPrefix(subject, "api-key:")
	if len(short) > 8 {
		short = short[:8]
	}
	return "user+" + short + "@example.com"
}
