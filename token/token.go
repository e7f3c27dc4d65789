// Package token issues and verifies the signed identity tokens carried on
// the Authorization header. Tokens are a signature-checked hint only; the
// auth resolver re-reads the user record before trusting role or tenant.
package token

import (
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/models"
)

// Claims is the payload embedded in an issued token.
type Claims struct {
	UserID   uuid.UUID
	Email    string
	Role     models.RoleType
	TenantID uuid.UUID
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the token clock. Tests use this to step past expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue signs a token for user with the service TTL. Pure function of the
// user, the secret and the clock; nothing is persisted.
func (s *Service) Issue(user *models.User) (string, error) {
	issuedAt := s.now()
	tok, err := jwt.NewBuilder().
		Subject(user.ID.String()).
		IssuedAt(issuedAt).
		Expiration(issuedAt.Add(s.ttl)).
		Claim("email", user.Email).
		Claim("role", string(user.Role)).
		Claim("tenant_id", user.TenantID.String()).
		Build()
	if err != nil {
		return "", errs.Wrap(errs.KindInternal, "failed to build token", err)
	}
	raw, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), s.secret))
	if err != nil {
		return "", errs.Wrap(errs.KindInternal, "failed to sign token", err)
	}
	return string(raw), nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Every failure mode collapses to the same unauthenticated error so callers
// cannot tell a bad signature from an expired token.
func (s *Service) Verify(raw string) (*Claims, error) {
	tok, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), s.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnauthenticated, "Invalid token", err)
	}

	sub, ok := tok.Subject()
	if !ok {
		return nil, errs.E(errs.KindUnauthenticated, "Invalid token")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errs.E(errs.KindUnauthenticated, "Invalid token")
	}

	var email, role, tenantRaw string
	if err := tok.Get("email", &email); err != nil {
		return nil, errs.E(errs.KindUnauthenticated, "Invalid token")
	}
	if err := tok.Get("role", &role); err != nil {
		return nil, errs.E(errs.KindUnauthenticated, "Invalid token")
	}
	if err := tok.Get("tenant_id", &tenantRaw); err != nil {
		return nil, errs.E(errs.KindUnauthenticated, "Invalid token")
	}
	tenantID, err := uuid.Parse(tenantRaw)
	if err != nil {
		return nil, errs.E(errs.KindUnauthenticated, "Invalid token")
	}

	return &Claims{
		UserID:   userID,
		Email:    email,
		Role:     models.RoleType(role),
		TenantID: tenantID,
	}, nil
}
